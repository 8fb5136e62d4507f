package courseValidator

import (
	"errors"
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// RetakeExam validates the course id for the final-exam retake route
func RetakeExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseIDParam(c, "course_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MarkLessonViewed validates the path ids for the content completion route
func MarkLessonViewed() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, lessonID, err := parseLessonParams(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// RequestCertificate validates the course id for the certificate route
func RequestCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseIDParam(c, "course_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, errors.New("Missing " + name + " parameter!")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("Invalid " + name + " parameter!")
	}
	return id, nil
}

// parseLessonParams reads the course_id and lesson_id path parameters
func parseLessonParams(c *fiber.Ctx) (int, int, error) {
	courseID, err := parseIDParam(c, "course_id")
	if err != nil {
		return 0, 0, err
	}
	lessonID, err := parseIDParam(c, "lesson_id")
	if err != nil {
		return 0, 0, err
	}
	return courseID, lessonID, nil
}
