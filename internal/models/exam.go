package models

import "time"

// Exam is an assessment session. It contributes to logged-hours totals
// alongside class logs.
type Exam struct {
	ID        string    `db:"id" json:"id"`
	Date      string    `db:"exam_date" json:"date"`
	CourseID  string    `db:"course_id" json:"courseId"`
	UnitIDs   []string  `json:"unitIds"`
	Type      string    `db:"exam_type" json:"type"`
	// Duration in hours. Legacy records may carry zero; aggregation counts
	// those as one hour.
	Duration  int       `db:"duration" json:"duration"`
	Topics    string    `db:"topics" json:"topics"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EffectiveDuration returns the hour count an exam contributes to totals.
func (e Exam) EffectiveDuration() int {
	if e.Duration <= 0 {
		return 1
	}
	return e.Duration
}
