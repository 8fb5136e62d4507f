package controllers

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAnswers stores a learner's quiz submission and auto-grades it.
// A submission with only multiple-choice answers is graded on the spot and
// marks the lesson complete; any free-text answer parks it for human review.
// Resubmitting replaces the previous row for the same (user, lesson).
func SubmitQuizAnswers(c *fiber.Ctx) error {
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
	reqData := c.Locals("validatedQuizSubmission").(*courseValidator.QuizSubmissionRequest)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check lesson exists and is a published quiz
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.ContentType != courseModels.LessonTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a quiz!", nil)
	}

	// Auto-gradable iff every answer is multiple choice
	autoGradable := true
	for _, answer := range reqData.Answers {
		if answer.QuestionType == courseModels.QuestionFreeText {
			autoGradable = false
			break
		}
	}

	answersJSON, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	status := courseModels.SubmissionPendingReview
	var score, total *float64
	var isPassed *bool

	if autoGradable {
		status = courseModels.SubmissionGraded
		score = reqData.Score
		total = reqData.Total
		// Pass/fail only determinable against a positive total
		if total != nil && *total > 0 {
			passed := floatValue(score)/(*total) >= QuizPassRatio
			isPassed = &passed
		}
	}

	// Upsert by (user, lesson): a resubmission replaces the previous row
	// and clears any earlier review trail
	var submission courseModels.QuizSubmission
	err = database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&submission).Error
	if err != nil {
		submission = courseModels.QuizSubmission{
			UserID:   userID,
			LessonID: uint(lessonID),
			CourseID: uint(courseID),
		}
	}

	submission.Answers = answersJSON
	submission.Score = score
	submission.Total = total
	submission.Status = status
	submission.IsPassed = isPassed
	submission.Feedback = ""
	submission.ReviewerID = nil
	submission.ReviewedAt = nil

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// A graded submission completes the lesson right away; pending review does not
	if status == courseModels.SubmissionGraded {
		if err := markLessonComplete(database.Database.Db, userID, uint(lessonID), uint(courseID)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
		}
		if _, _, err := EvaluateCourseCompletion(database.Database.Db, userID, uint(courseID)); err != nil {
			log.Printf("Course completion check failed for user %d course %d: %v", userID, courseID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"id":        submission.ID,
		"status":    submission.Status,
		"is_passed": submission.IsPassed,
		"score":     submission.Score,
		"total":     submission.Total,
	})
}

// GetQuizSubmission returns the calling user's submission for a lesson, or null
func GetQuizSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var submission courseModels.QuizSubmission
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No submission found.", fiber.Map{
			"submission": nil,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", fiber.Map{
		"submission": submission,
	})
}
