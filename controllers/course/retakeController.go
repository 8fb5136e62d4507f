package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// RetakeFinalExam wipes the user's final-exam submissions and completions for
// a course and resets the enrollment's completion fields so the exam can be
// attempted again. This is the only path that moves an enrollment backward
// from completed. CAT lessons and other courses are never touched; repeat
// calls are harmless.
func RetakeFinalExam(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Resolve the course's final-exam lesson ids. Expected 0 or 1, but the
	// reset sums over the set either way.
	var quizLessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND content_type = ? AND is_deleted = ?", courseID, courseModels.LessonTypeQuiz, false).Find(&quizLessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course lessons!", nil)
	}

	examLessonIDs := make([]uint, 0, 1)
	for _, lesson := range quizLessons {
		if lesson.IsFinalExam() {
			examLessonIDs = append(examLessonIDs, lesson.ID)
		}
	}

	if len(examLessonIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course has no final exam!", nil)
	}

	tx := database.Database.Db.Begin()

	// Hard deletes so a fresh attempt can reclaim the (user, lesson) key
	if err := tx.Unscoped().Where("user_id = ? AND lesson_id IN ?", userID, examLessonIDs).Delete(&courseModels.QuizSubmission{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset exam submissions!", nil)
	}

	if err := tx.Unscoped().Where("user_id = ? AND lesson_id IN ?", userID, examLessonIDs).Delete(&courseModels.LessonCompletion{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset exam completions!", nil)
	}

	enrollment.IsCompleted = false
	enrollment.CompletedAt = nil
	enrollment.FinalScore = nil
	enrollment.IsPassed = nil

	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset enrollment!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final exam reset. You can retake it now!", fiber.Map{
		"ok":                 true,
		"final_exam_lessons": len(examLessonIDs),
	})
}
