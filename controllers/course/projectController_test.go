package controllers_test

import (
	"encoding/json"
	"fmt"
	courseModels "lms/models/course"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectSubmissionResult struct {
	Submission courseModels.ProjectSubmission `json:"submission"`
}

func projectSubmitURL(courseID, lessonID uint) string {
	return fmt.Sprintf("/course/%d/lesson/%d/project/submit", courseID, lessonID)
}

func TestSubmitProjectGoesToReview(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeProject, "")
	enroll(t, db, user.ID, course.ID)

	code, resp := doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "My capstone writeup",
		"submission_url":  "https://github.com/ada/capstone",
	})
	require.Equal(t, fiber.StatusOK, code)

	var result projectSubmissionResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, courseModels.ProjectPendingReview, result.Submission.Status)
	assert.Equal(t, "My capstone writeup", result.Submission.SubmissionText)

	// No completion until an admin approves
	assert.Equal(t, int64(0), completionCount(t, db, user.ID, lesson.ID))
}

func TestSubmitProjectRequiresTextOrURL(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeProject, "")
	enroll(t, db, user.ID, course.ID)

	code, _ := doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "   ",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	var count int64
	db.Model(&courseModels.ProjectSubmission{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitProjectRejectsTooManyAttachments(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeProject, "")
	enroll(t, db, user.ID, course.ID)

	attachments := make([]string, courseModels.MaxProjectAttachments+1)
	for i := range attachments {
		attachments[i] = fmt.Sprintf("https://files.example.com/%d.pdf", i)
	}

	code, _ := doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "With attachments",
		"attachment_urls": attachments,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestSubmitProjectOnQuizLesson(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeQuiz, courseModels.AssessmentCAT)
	enroll(t, db, user.ID, course.ID)

	code, _ := doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "Wrong lesson kind",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestResubmitProjectReopensReview(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	admin := createUser(t, db, "root", "ADMIN")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeProject, "")
	enroll(t, db, user.ID, course.ID)

	code, resp := doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "First draft",
	})
	require.Equal(t, fiber.StatusOK, code)

	var first projectSubmissionResult
	require.NoError(t, json.Unmarshal(resp.Data, &first))

	reviewURL := fmt.Sprintf("/admin/review/project-submission/%d", first.Submission.ID)
	code, _ = doRequest(t, app, "PATCH", reviewURL, bearerToken(t, admin), map[string]interface{}{
		"status":   courseModels.ProjectRejected,
		"feedback": "Needs more depth.",
	})
	require.Equal(t, fiber.StatusOK, code)

	code, resp = doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_text": "Second draft",
	})
	require.Equal(t, fiber.StatusOK, code)

	var second projectSubmissionResult
	require.NoError(t, json.Unmarshal(resp.Data, &second))
	assert.Equal(t, first.Submission.ID, second.Submission.ID)
	assert.Equal(t, courseModels.ProjectPendingReview, second.Submission.Status)
	assert.Empty(t, second.Submission.Feedback)
	assert.Nil(t, second.Submission.ReviewerID)

	var count int64
	db.Model(&courseModels.ProjectSubmission{}).Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetProjectSubmission(t *testing.T) {
	app, db := setupApp(t)
	user := createUser(t, db, "ada", "USER")
	course := createCourse(t, db)
	lesson := createLesson(t, db, course.ID, courseModels.LessonTypeProject, "")
	enroll(t, db, user.ID, course.ID)

	url := fmt.Sprintf("/course/project-submission?lesson_id=%d", lesson.ID)

	code, resp := doRequest(t, app, "GET", url, bearerToken(t, user), nil)
	require.Equal(t, fiber.StatusOK, code)
	var empty struct {
		Submission *courseModels.ProjectSubmission `json:"submission"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &empty))
	assert.Nil(t, empty.Submission)

	code, _ = doRequest(t, app, "POST", projectSubmitURL(course.ID, lesson.ID), bearerToken(t, user), map[string]interface{}{
		"submission_url": "https://github.com/ada/capstone",
	})
	require.Equal(t, fiber.StatusOK, code)

	code, resp = doRequest(t, app, "GET", url, bearerToken(t, user), nil)
	require.Equal(t, fiber.StatusOK, code)
	var found projectSubmissionResult
	require.NoError(t, json.Unmarshal(resp.Data, &found))
	assert.Equal(t, "https://github.com/ada/capstone", found.Submission.SubmissionURL)
}
