package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiResponse is the JsonResponse envelope used by every handler
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:               "test-secret",
		NotificationsEnabled: false,
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminReviewRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "-" + t.Name() + "@example.com", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func createCourse(t *testing.T, db *gorm.DB) courseModels.Course {
	t.Helper()
	course := courseModels.Course{Title: "Backend Fundamentals", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createLesson(t *testing.T, db *gorm.DB, courseID uint, contentType, assessmentType string) courseModels.Lesson {
	t.Helper()
	lesson := courseModels.Lesson{
		CourseID:    courseID,
		Title:       contentType + " lesson",
		ContentType: contentType,
		IsPublished: true,
	}
	if contentType == courseModels.LessonTypeQuiz {
		payload, err := json.Marshal(courseModels.QuizPayload{
			AssessmentType: assessmentType,
			Questions: []courseModels.QuizQuestion{
				{Question: "Pick one", QuestionType: courseModels.QuestionMultipleChoice, Options: []string{"a", "b"}},
			},
		})
		require.NoError(t, err)
		lesson.QuizData = payload
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()
	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// doRequest performs a JSON round-trip against the test app
func doRequest(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func completionCount(t *testing.T, db *gorm.DB, userID, lessonID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		Count(&count).Error)
	return count
}
