package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Quiz submission and lookup
	courseGroup.Post("/:course_id/lesson/:lesson_id/quiz/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuizAnswers)
	courseGroup.Get("/quiz-submission", middleware.JWTMiddleware, validators.GetOwnSubmission(), controllers.GetQuizSubmission)

	// Project submission and lookup
	courseGroup.Post("/:course_id/lesson/:lesson_id/project/submit", middleware.JWTMiddleware, validators.SubmitProject(), controllers.SubmitProject)
	courseGroup.Get("/project-submission", middleware.JWTMiddleware, validators.GetOwnSubmission(), controllers.GetProjectSubmission)

	// Content lesson completion
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.MarkLessonViewed(), controllers.MarkLessonViewed)

	// Final exam retake
	courseGroup.Post("/:course_id/retake-final-exam", middleware.JWTMiddleware, validators.RetakeExam(), controllers.RetakeFinalExam)

	// Certificate request
	courseGroup.Post("/:course_id/certificate/request", middleware.JWTMiddleware, validators.RequestCertificate(), controllers.RequestCertificate)

	// Learner dashboard and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.GetDashboard)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
