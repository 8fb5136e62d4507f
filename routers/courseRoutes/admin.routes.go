package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminReviewRoutes sets up the admin review surface
func SetupAdminReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/admin/review")

	reviewGroup.Get("/pending", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, controllers.GetPendingReviews)
	reviewGroup.Patch("/project-submission/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, validators.ReviewProject(), controllers.ReviewProjectSubmission)
	reviewGroup.Patch("/quiz-submission/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, validators.ReviewQuiz(), controllers.ReviewQuizSubmission)
}
