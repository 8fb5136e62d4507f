package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AnswerInput mirrors the stored answer shape; question_type is mandatory so
// the auto-grader can classify the submission.
type AnswerInput struct {
	QuestionType   string `json:"question_type" validate:"required,oneof=multiple_choice free_text"`
	SelectedOption *int   `json:"selected_option,omitempty"`
	Content        string `json:"content,omitempty"`
}

type QuizSubmissionRequest struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
	Score   *float64      `json:"score" validate:"omitempty,gte=0"`
	Total   *float64      `json:"total" validate:"omitempty,gte=0"`
}

type ProjectSubmissionRequest struct {
	SubmissionText string   `json:"submission_text"`
	SubmissionURL  string   `json:"submission_url" validate:"omitempty,url"`
	AttachmentURLs []string `json:"attachment_urls" validate:"omitempty,max=10,dive,url"`
}

// SubmitQuiz validates the quiz submission route: both path ids and a
// non-empty answers array. Fails closed before any write.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, lessonID, err := parseLessonParams(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		reqData := new(QuizSubmissionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers are required!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}

// SubmitProject validates the project submission route. At least one of
// submission text and submission URL is required; attachments are capped.
func SubmitProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, lessonID, err := parseLessonParams(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		reqData := new(ProjectSubmissionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.SubmissionText = strings.TrimSpace(reqData.SubmissionText)
		reqData.SubmissionURL = strings.TrimSpace(reqData.SubmissionURL)

		if reqData.SubmissionText == "" && reqData.SubmissionURL == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Provide submission text or a submission URL!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationMessages(err))
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedProjectSubmission", reqData)
		return c.Next()
	}
}

// GetOwnSubmission validates the lesson_id query parameter for the
// own-submission lookup routes
func GetOwnSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Query("lesson_id"))
		if lessonIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// validationMessages flattens validator errors into a field -> message map
func validationMessages(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request!"
		return errors
	}
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			errors[fieldErr.Field()] = "This field is required!"
		case "oneof":
			errors[fieldErr.Field()] = "Value must be one of: " + fieldErr.Param()
		case "url":
			errors[fieldErr.Field()] = "Must be a valid URL!"
		case "max":
			errors[fieldErr.Field()] = "Too many items (max " + fieldErr.Param() + ")!"
		case "gte":
			errors[fieldErr.Field()] = "Must be at least " + fieldErr.Param() + "!"
		default:
			errors[fieldErr.Field()] = "Invalid value!"
		}
	}
	return errors
}
