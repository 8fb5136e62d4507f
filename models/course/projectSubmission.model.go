package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project submission statuses
const (
	ProjectPendingReview = "pending_review"
	ProjectApproved      = "approved"
	ProjectRejected      = "rejected"
)

// MaxProjectAttachments caps the attachment list on a project submission
const MaxProjectAttachments = 10

// ProjectSubmission represents a learner's uploaded project for a project lesson.
// One row per (user, lesson); resubmission replaces the row and re-opens review.
type ProjectSubmission struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"uniqueIndex:idx_project_sub_user_lesson;not null"`
	LessonID       uint           `json:"lesson_id" gorm:"uniqueIndex:idx_project_sub_user_lesson;not null"`
	CourseID       uint           `json:"course_id" gorm:"index;not null"`
	SubmissionText string         `json:"submission_text" gorm:"type:text"`
	SubmissionURL  string         `json:"submission_url"`
	AttachmentURLs datatypes.JSON `json:"attachment_urls"` // Array of URLs, at most 10
	Status         string         `json:"status" gorm:"default:'pending_review'"` // pending_review, approved, rejected
	Feedback       string         `json:"feedback"`
	ReviewerID     *uint          `json:"reviewer_id"`
	ReviewedAt     *time.Time     `json:"reviewed_at"`
	IsDeleted      bool           `gorm:"default:false"`
}
