package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"lms/validators/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ReviewProjectSubmission applies an admin's decision to a pending project
// submission. The transition is terminal: approved and rejected submissions
// can only be re-opened by the learner resubmitting. Approval writes the
// completion record; rejection leaves completions untouched. The decision
// email is best-effort and never fails the review.
func ReviewProjectSubmission(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(int)
	reqData := c.Locals("validatedReviewDecision").(*courseValidator.ReviewDecisionRequest)

	var submission courseModels.ProjectSubmission
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", submissionID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if submission.Status != courseModels.ProjectPendingReview {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission has already been reviewed!", nil)
	}

	now := time.Now()
	submission.Status = reqData.Status
	submission.Feedback = reqData.Feedback
	submission.ReviewerID = &reviewerID
	submission.ReviewedAt = &now

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review decision!", nil)
	}

	if submission.Status == courseModels.ProjectApproved {
		if err := markLessonComplete(database.Database.Db, submission.UserID, submission.LessonID, submission.CourseID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
		}
		if _, _, err := EvaluateCourseCompletion(database.Database.Db, submission.UserID, submission.CourseID); err != nil {
			log.Printf("Course completion check failed for user %d course %d: %v", submission.UserID, submission.CourseID, err)
		}
	}

	notifyReviewDecision(submission.UserID, submission.LessonID, submission.Status, submission.Feedback)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review decision saved!", fiber.Map{
		"submission": submission,
	})
}

// ReviewQuizSubmission grades a quiz submission that contains free-text
// answers. The admin supplies the score and total; the submission moves to
// graded and the lesson is marked complete. Reviewed quizzes carry no
// pass/fail of their own, they only feed the course composite.
func ReviewQuizSubmission(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(int)
	reqData := c.Locals("validatedQuizReview").(*courseValidator.QuizReviewRequest)

	var submission courseModels.QuizSubmission
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", submissionID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if submission.Status != courseModels.SubmissionPendingReview {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission has already been graded!", nil)
	}

	now := time.Now()
	submission.Score = reqData.Score
	submission.Total = reqData.Total
	submission.Status = courseModels.SubmissionGraded
	submission.Feedback = reqData.Feedback
	submission.ReviewerID = &reviewerID
	submission.ReviewedAt = &now

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	if err := markLessonComplete(database.Database.Db, submission.UserID, submission.LessonID, submission.CourseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
	}
	if _, _, err := EvaluateCourseCompletion(database.Database.Db, submission.UserID, submission.CourseID); err != nil {
		log.Printf("Course completion check failed for user %d course %d: %v", submission.UserID, submission.CourseID, err)
	}

	notifyQuizGraded(submission.UserID, submission.LessonID, floatValue(submission.Score), floatValue(submission.Total), submission.Feedback)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz graded!", fiber.Map{
		"submission": submission,
	})
}

// GetPendingReviews lists submissions awaiting a human decision
func GetPendingReviews(c *fiber.Ctx) error {
	var projectSubs []courseModels.ProjectSubmission
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", courseModels.ProjectPendingReview, false).Order("created_at asc").Find(&projectSubs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending reviews!", nil)
	}

	var quizSubs []courseModels.QuizSubmission
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", courseModels.SubmissionPendingReview, false).Order("created_at asc").Find(&quizSubs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending reviews fetched successfully!", fiber.Map{
		"project_submissions": projectSubs,
		"quiz_submissions":    quizSubs,
		"total":               len(projectSubs) + len(quizSubs),
	})
}

// notifyReviewDecision emails the learner about a project decision.
// Failures are logged and swallowed; review success does not depend on it.
func notifyReviewDecision(userID, lessonID uint, decision, feedback string) {
	var learner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&learner).Error; err != nil {
		log.Printf("Review notification skipped, learner %d not found: %v", userID, err)
		return
	}

	var lesson courseModels.Lesson
	database.Database.Db.Where("id = ?", lessonID).First(&lesson)

	utils.SendProjectReviewedEmail(learner.Email, learner.Name, lesson.Title, decision, feedback)
}

// notifyQuizGraded emails the learner their reviewed quiz result
func notifyQuizGraded(userID, lessonID uint, score, total float64, feedback string) {
	var learner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&learner).Error; err != nil {
		log.Printf("Grading notification skipped, learner %d not found: %v", userID, err)
		return
	}

	var lesson courseModels.Lesson
	database.Database.Db.Where("id = ?", lessonID).First(&lesson)

	utils.SendQuizGradedEmail(learner.Email, learner.Name, lesson.Title, score, total, feedback)
}
