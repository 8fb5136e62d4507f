package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz submission statuses
const (
	SubmissionPendingReview = "pending_review"
	SubmissionGraded        = "graded"
)

// Answer question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionFreeText       = "free_text"
)

// QuizAnswer is a single answer inside a submission's answers payload
type QuizAnswer struct {
	QuestionType   string `json:"question_type"` // multiple_choice, free_text
	SelectedOption *int   `json:"selected_option,omitempty"`
	Content        string `json:"content,omitempty"`
}

// QuizSubmission represents a learner's answer to a quiz lesson.
// One row per (user, lesson); resubmission replaces the row.
type QuizSubmission struct {
	gorm.Model
	UserID     uint           `json:"user_id" gorm:"uniqueIndex:idx_quiz_sub_user_lesson;not null"`
	LessonID   uint           `json:"lesson_id" gorm:"uniqueIndex:idx_quiz_sub_user_lesson;not null"`
	CourseID   uint           `json:"course_id" gorm:"index;not null"`
	Answers    datatypes.JSON `json:"answers"` // Ordered array of QuizAnswer
	Score      *float64       `json:"score"`
	Total      *float64       `json:"total"`
	Status     string         `json:"status" gorm:"default:'pending_review'"` // pending_review, graded
	IsPassed   *bool          `json:"is_passed"`                              // Only set for fully auto-graded submissions
	Feedback   string         `json:"feedback"`
	ReviewerID *uint          `json:"reviewer_id"`
	ReviewedAt *time.Time     `json:"reviewed_at"`
	IsDeleted  bool           `gorm:"default:false"`
}
