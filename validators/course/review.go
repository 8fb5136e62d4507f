package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

type ReviewDecisionRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

type QuizReviewRequest struct {
	Score    *float64 `json:"score"`
	Total    *float64 `json:"total"`
	Feedback string   `json:"feedback"`
}

// ReviewProject validates the admin decision on a project submission.
// The decision must be exactly approved or rejected.
func ReviewProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		submissionID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		reqData := new(ReviewDecisionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != courseModels.ProjectApproved && reqData.Status != courseModels.ProjectRejected {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Review decision must be 'approved' or 'rejected'!", nil)
		}

		c.Locals("submissionID", submissionID)
		c.Locals("validatedReviewDecision", reqData)
		return c.Next()
	}
}

// ReviewQuiz validates the admin score entry for a free-text quiz submission
func ReviewQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		submissionID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		reqData := new(QuizReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Score == nil || reqData.Total == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Score and total are required!", nil)
		}

		if *reqData.Total <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Total must be greater than zero!", nil)
		}

		if *reqData.Score < 0 || *reqData.Score > *reqData.Total {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Score must be between 0 and the total!", nil)
		}

		c.Locals("submissionID", submissionID)
		c.Locals("validatedQuizReview", reqData)
		return c.Next()
	}
}
