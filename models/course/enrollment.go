package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with completion state.
// FinalScore and IsPassed stay nil until the course is completed; the retake
// path is the only one allowed to move a completed enrollment backward.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	FinalScore  *float64   `json:"final_score_100"`
	IsPassed    *bool      `json:"is_passed"`
	IsDeleted   bool       `gorm:"default:false"`
}
