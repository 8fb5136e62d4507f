package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonCompletion records that a user finished a specific lesson.
// Written by the auto-grader, the review workflow on approval, and the
// mark-lesson-viewed path for plain content lessons.
type LessonCompletion struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_completion_user_lesson;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"uniqueIndex:idx_completion_user_lesson;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
	IsDeleted   bool      `gorm:"default:false"`
}
