package utils

import (
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeReviewDigestScheduler sets up the daily pending-review digest
func InitializeReviewDigestScheduler() {
	log.Println("[REVIEW-DIGEST] Initializing review digest scheduler...")

	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.ReviewDigestCron, func() {
		log.Println("[REVIEW-DIGEST] Running daily pending review digest...")
		SendPendingReviewDigest()
	})
	if err != nil {
		log.Printf("[REVIEW-DIGEST] Invalid schedule %q: %v", config.AppConfig.ReviewDigestCron, err)
		return
	}

	c.Start()
	log.Printf("[REVIEW-DIGEST] Scheduler started with schedule %q", config.AppConfig.ReviewDigestCron)
}

// SendPendingReviewDigest mails every admin the size of the review queue.
// Skipped entirely when there is nothing waiting.
func SendPendingReviewDigest() {
	db := database.Database.Db

	var pendingProjects int64
	if err := db.Model(&courseModels.ProjectSubmission{}).
		Where("status = ? AND is_deleted = ?", courseModels.ProjectPendingReview, false).
		Count(&pendingProjects).Error; err != nil {
		log.Printf("[REVIEW-DIGEST] Error counting pending projects: %v", err)
		return
	}

	var pendingQuizzes int64
	if err := db.Model(&courseModels.QuizSubmission{}).
		Where("status = ? AND is_deleted = ?", courseModels.SubmissionPendingReview, false).
		Count(&pendingQuizzes).Error; err != nil {
		log.Printf("[REVIEW-DIGEST] Error counting pending quizzes: %v", err)
		return
	}

	if pendingProjects+pendingQuizzes == 0 {
		log.Println("[REVIEW-DIGEST] Review queue empty, no digest sent")
		return
	}

	// Submissions that arrived since the start of yesterday
	yesterday := now.BeginningOfDay().AddDate(0, 0, -1)
	var newSinceYesterday int64
	db.Model(&courseModels.ProjectSubmission{}).
		Where("status = ? AND is_deleted = ? AND created_at >= ?", courseModels.ProjectPendingReview, false, yesterday).
		Count(&newSinceYesterday)
	var newQuizzes int64
	db.Model(&courseModels.QuizSubmission{}).
		Where("status = ? AND is_deleted = ? AND created_at >= ?", courseModels.SubmissionPendingReview, false, yesterday).
		Count(&newQuizzes)
	newSinceYesterday += newQuizzes

	var admins []models.User
	if err := db.Where("role = ? AND is_deleted = ?", "ADMIN", false).Find(&admins).Error; err != nil {
		log.Printf("[REVIEW-DIGEST] Error fetching admins: %v", err)
		return
	}

	for _, admin := range admins {
		SendPendingReviewDigestEmail(admin.Email, admin.Name, int(pendingProjects), int(pendingQuizzes), int(newSinceYesterday))
		log.Printf("[REVIEW-DIGEST] Sent digest to %s", admin.Email)
	}
}
