package controllers_test

import (
	"fmt"
	courseModels "lms/models/course"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollInCourse(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)

	url := fmt.Sprintf("/course/%d/enroll", course.ID)

	code, _ := doRequest(t, app, "POST", url, bearerToken(t, user), nil)
	require.Equal(t, fiber.StatusOK, code)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Enrolling twice is refused
	code, _ = doRequest(t, app, "POST", url, bearerToken(t, user), nil)
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestEnrollRequiresActiveCourse(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")

	course := courseModels.Course{Title: "Draft Course", Status: "DRAFT"}
	require.NoError(t, db.Create(&course).Error)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), bearerToken(t, user), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}
