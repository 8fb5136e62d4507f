package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonViewed records completion of a plain content lesson.
// Quiz and project lessons are completed through grading and review instead.
func MarkLessonViewed(c *fiber.Ctx) error {
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

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.ContentType != courseModels.LessonTypeContent {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only content lessons can be marked as viewed!", nil)
	}

	if err := markLessonComplete(database.Database.Db, userID, uint(lessonID), uint(courseID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
	}

	if _, _, err := EvaluateCourseCompletion(database.Database.Db, userID, uint(courseID)); err != nil {
		log.Printf("Course completion check failed for user %d course %d: %v", userID, courseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as viewed!", nil)
}

// GetDashboard returns the learner's per-course progress, grade breakdown and
// completion state. Grades are recomputed from current rows on every call.
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type CourseDashboard struct {
		Enrollment         courseModels.Enrollment `json:"enrollment"`
		CourseName         string                  `json:"course_name"`
		Progress           float64                 `json:"progress"`
		Grades             GradeSummary            `json:"grades"`
		EligibleToComplete bool                    `json:"eligible_to_complete"`
		Passed             *bool                   `json:"passed"`
	}

	result := make([]CourseDashboard, 0, len(enrollments))
	for _, enrollment := range enrollments {
		// Completion evaluation first, so the view reflects any review
		// that landed since the last visit
		eligible, summary, err := EvaluateCourseCompletion(database.Database.Db, userID, enrollment.CourseID)
		if err != nil {
			log.Printf("Course completion check failed for user %d course %d: %v", userID, enrollment.CourseID, err)
			summary, _ = ComputeCourseGradeSummary(database.Database.Db, userID, enrollment.CourseID)
		}

		// Re-read: evaluation may have just marked it complete
		var current courseModels.Enrollment
		if err := database.Database.Db.Where("id = ?", enrollment.ID).First(&current).Error; err != nil {
			current = enrollment
		}

		var course courseModels.Course
		database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course)

		var totalLessons int64
		database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_published = ? AND is_deleted = ?", enrollment.CourseID, true, false).Count(&totalLessons)

		var completedLessons int64
		database.Database.Db.Model(&courseModels.LessonCompletion{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, enrollment.CourseID, false).Count(&completedLessons)

		progress := float64(0)
		if totalLessons > 0 {
			progress = float64(completedLessons) / float64(totalLessons) * 100
		}

		result = append(result, CourseDashboard{
			Enrollment:         current,
			CourseName:         course.Title,
			Progress:           progress,
			Grades:             summary,
			EligibleToComplete: eligible,
			Passed:             current.IsPassed,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}
