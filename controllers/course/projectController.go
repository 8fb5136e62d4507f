package controllers

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitProject stores a learner's project submission for review.
// Resubmitting replaces the previous row and re-opens the review.
func SubmitProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	reqData := c.Locals("validatedProjectSubmission").(*courseValidator.ProjectSubmissionRequest)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check lesson exists and is a published project lesson
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.ContentType != courseModels.LessonTypeProject {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a project!", nil)
	}

	attachmentsJSON, err := json.Marshal(reqData.AttachmentURLs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attachments payload!", nil)
	}

	// Upsert by (user, lesson): the latest submission is the one under review
	var submission courseModels.ProjectSubmission
	err = database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&submission).Error
	if err != nil {
		submission = courseModels.ProjectSubmission{
			UserID:   userID,
			LessonID: uint(lessonID),
			CourseID: uint(courseID),
		}
	}

	submission.SubmissionText = reqData.SubmissionText
	submission.SubmissionURL = reqData.SubmissionURL
	submission.AttachmentURLs = attachmentsJSON
	submission.Status = courseModels.ProjectPendingReview
	submission.Feedback = ""
	submission.ReviewerID = nil
	submission.ReviewedAt = nil

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit project!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project submitted for review!", fiber.Map{
		"submission": submission,
	})
}

// GetProjectSubmission returns the calling user's submission for a lesson, or null
func GetProjectSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var submission courseModels.ProjectSubmission
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No submission found.", fiber.Map{
			"submission": nil,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", fiber.Map{
		"submission": submission,
	})
}
