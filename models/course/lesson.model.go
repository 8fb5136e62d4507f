package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson content types
const (
	LessonTypeContent = "content"
	LessonTypeQuiz    = "quiz"
	LessonTypeProject = "project"
)

// Quiz assessment types
const (
	AssessmentCAT       = "cat"
	AssessmentFinalExam = "final_exam"
)

// Lesson represents a single lesson within a course
type Lesson struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type" gorm:"default:'content'"` // content, quiz, project
	TextContent string         `json:"text_content" gorm:"type:text"`
	VideoURL    string         `json:"video_url"`
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	QuizData    datatypes.JSON `json:"quiz_data"` // Only set for quiz lessons
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}

// QuizQuestion is a single question inside a quiz payload
type QuizQuestion struct {
	Question     string   `json:"question"`
	QuestionType string   `json:"question_type"` // multiple_choice, free_text
	Options      []string `json:"options,omitempty"`
	Answer       *int     `json:"answer,omitempty"` // Index of the correct option
}

// QuizPayload is the decoded quiz_data column
type QuizPayload struct {
	Questions      []QuizQuestion `json:"questions"`
	AssessmentType string         `json:"assessment_type"` // cat (default), final_exam
}

// QuizInfo decodes the lesson's quiz payload. Unknown or missing
// assessment types fall back to continuous assessment.
func (l *Lesson) QuizInfo() QuizPayload {
	var payload QuizPayload
	if len(l.QuizData) > 0 {
		_ = json.Unmarshal(l.QuizData, &payload)
	}
	if payload.AssessmentType != AssessmentFinalExam {
		payload.AssessmentType = AssessmentCAT
	}
	return payload
}

// IsFinalExam reports whether this lesson is the course's final exam quiz
func (l *Lesson) IsFinalExam() bool {
	return l.ContentType == LessonTypeQuiz && l.QuizInfo().AssessmentType == AssessmentFinalExam
}
