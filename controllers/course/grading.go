package controllers

import (
	courseModels "lms/models/course"
	"time"

	"gorm.io/gorm"
)

const (
	catWeight  = 30.0
	examWeight = 70.0

	// QuizPassRatio is the auto-grader pass mark for a single quiz
	QuizPassRatio = 0.70

	// CoursePassMark is the composite score needed to pass a course
	CoursePassMark = 70.0
)

// GradeSummary is the derived per-(user, course) grade breakdown. It is
// recomputed from current rows on every call and never persisted.
type GradeSummary struct {
	CatRaw                 float64 `json:"cat_raw"`
	CatTotalRaw            float64 `json:"cat_total_raw"`
	CatScaled30            float64 `json:"cat_scaled_30"`
	ExamRaw                float64 `json:"exam_raw"`
	ExamTotalRaw           float64 `json:"exam_total_raw"`
	ExamScaled70           float64 `json:"exam_scaled_70"`
	FinalScore100          float64 `json:"final_score_100"`
	HasFinalExam           bool    `json:"has_final_exam"`
	FinalExamPendingReview bool    `json:"final_exam_pending_review"`
	FinalExamGraded        bool    `json:"final_exam_graded"`
}

// ComputeCourseGradeSummary recomputes a user's grade breakdown for a course
// from the current quiz submission rows. Continuous assessment is scaled to a
// 30-point band and the final exam to a 70-point band. Pure read, no writes.
func ComputeCourseGradeSummary(db *gorm.DB, userID, courseID uint) (GradeSummary, error) {
	var summary GradeSummary

	var quizLessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND content_type = ? AND is_published = ? AND is_deleted = ?",
		courseID, courseModels.LessonTypeQuiz, true, false).Find(&quizLessons).Error; err != nil {
		return summary, err
	}

	catLessonIDs := make(map[uint]bool)
	examLessonIDs := make(map[uint]bool)
	allLessonIDs := make([]uint, 0, len(quizLessons))
	for _, lesson := range quizLessons {
		if lesson.QuizInfo().AssessmentType == courseModels.AssessmentFinalExam {
			examLessonIDs[lesson.ID] = true
		} else {
			catLessonIDs[lesson.ID] = true
		}
		allLessonIDs = append(allLessonIDs, lesson.ID)
	}

	summary.HasFinalExam = len(examLessonIDs) > 0

	if len(allLessonIDs) > 0 {
		var submissions []courseModels.QuizSubmission
		if err := db.Where("user_id = ? AND lesson_id IN ? AND is_deleted = ?",
			userID, allLessonIDs, false).Find(&submissions).Error; err != nil {
			return summary, err
		}

		for _, sub := range submissions {
			if examLessonIDs[sub.LessonID] {
				switch sub.Status {
				case courseModels.SubmissionPendingReview:
					summary.FinalExamPendingReview = true
				case courseModels.SubmissionGraded:
					summary.FinalExamGraded = true
					summary.ExamRaw += floatValue(sub.Score)
					summary.ExamTotalRaw += floatValue(sub.Total)
				}
				continue
			}
			// Pending CAT submissions count toward neither numerator nor denominator
			if catLessonIDs[sub.LessonID] && sub.Status == courseModels.SubmissionGraded {
				summary.CatRaw += floatValue(sub.Score)
				summary.CatTotalRaw += floatValue(sub.Total)
			}
		}
	}

	if summary.CatTotalRaw > 0 {
		summary.CatScaled30 = summary.CatRaw / summary.CatTotalRaw * catWeight
	}
	if summary.ExamTotalRaw > 0 {
		summary.ExamScaled70 = summary.ExamRaw / summary.ExamTotalRaw * examWeight
	}
	summary.FinalScore100 = clamp(summary.CatScaled30+summary.ExamScaled70, 0, 100)

	return summary, nil
}

// EvaluateCourseCompletion checks whether the user has finished every published
// lesson and had the final exam graded, and marks the enrollment complete when
// so. An ineligible user's enrollment is left untouched: a final exam still in
// review never produces a premature verdict, and only the retake path may move
// a completed enrollment backward.
func EvaluateCourseCompletion(db *gorm.DB, userID, courseID uint) (bool, GradeSummary, error) {
	summary, err := ComputeCourseGradeSummary(db, userID, courseID)
	if err != nil {
		return false, summary, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?",
		courseID, true, false).Find(&lessons).Error; err != nil {
		return false, summary, err
	}
	if len(lessons) == 0 {
		return false, summary, nil
	}

	attempted, err := attemptedLessonIDs(db, userID, courseID)
	if err != nil {
		return false, summary, err
	}

	for _, lesson := range lessons {
		if !attempted[lesson.ID] {
			return false, summary, nil
		}
	}

	if !summary.HasFinalExam || !summary.FinalExamGraded {
		return false, summary, nil
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&enrollment).Error; err != nil {
		return false, summary, err
	}

	passed := summary.FinalScore100 >= CoursePassMark
	score := summary.FinalScore100
	now := time.Now()

	enrollment.IsCompleted = true
	if enrollment.CompletedAt == nil {
		enrollment.CompletedAt = &now
	}
	enrollment.FinalScore = &score
	enrollment.IsPassed = &passed

	if err := db.Save(&enrollment).Error; err != nil {
		return false, summary, err
	}

	return true, summary, nil
}

// attemptedLessonIDs returns the union of completed lessons and lessons whose
// submission is still pending review for the user in a course.
func attemptedLessonIDs(db *gorm.DB, userID, courseID uint) (map[uint]bool, error) {
	attempted := make(map[uint]bool)

	var completions []courseModels.LessonCompletion
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).Find(&completions).Error; err != nil {
		return nil, err
	}
	for _, completion := range completions {
		attempted[completion.LessonID] = true
	}

	var quizSubs []courseModels.QuizSubmission
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.SubmissionPendingReview, false).Find(&quizSubs).Error; err != nil {
		return nil, err
	}
	for _, sub := range quizSubs {
		attempted[sub.LessonID] = true
	}

	var projectSubs []courseModels.ProjectSubmission
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.ProjectPendingReview, false).Find(&projectSubs).Error; err != nil {
		return nil, err
	}
	for _, sub := range projectSubs {
		attempted[sub.LessonID] = true
	}

	return attempted, nil
}

// markLessonComplete upserts the completion record for (user, lesson).
// Re-grading the same lesson just refreshes the timestamp.
func markLessonComplete(db *gorm.DB, userID, lessonID, courseID uint) error {
	var existing courseModels.LessonCompletion
	err := db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?",
		userID, lessonID, false).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		completion := courseModels.LessonCompletion{
			UserID:      userID,
			LessonID:    lessonID,
			CourseID:    courseID,
			CompletedAt: time.Now(),
		}
		return db.Create(&completion).Error
	}

	existing.CompletedAt = time.Now()
	return db.Save(&existing).Error
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
