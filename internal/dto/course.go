package dto

import "github.com/culiplan/culiplan-api/internal/models"

// CourseRequest creates or replaces a course module. Units and learning
// results are always submitted wholesale; there is no partial patch of the
// nested sequences.
type CourseRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Cycle           string                  `json:"cycle"`
	Grade           string                  `json:"grade"`
	WeeklyHours     int                     `json:"weeklyHours"`
	AnnualHours     int                     `json:"annualHours"`
	Color           string                  `json:"color"`
	Units           []models.Unit           `json:"units"`
	LearningResults []models.LearningResult `json:"learningResults"`
}

// CourseProgressResponse is the programación view for one course: per-unit
// realized hours and per-RA coverage, all recomputed from logs.
type CourseProgressResponse struct {
	Course     models.Course                   `json:"course"`
	Units      []models.UnitProgress           `json:"units"`
	Results    []models.LearningResultProgress `json:"results"`
	Completion models.CourseCompletion         `json:"completion"`
	Effort     models.EffortBreakdown          `json:"effort"`
}

// ExamRequest creates or updates an exam.
type ExamRequest struct {
	Date     string   `json:"date" binding:"required"`
	CourseID string   `json:"courseId" binding:"required"`
	UnitIDs  []string `json:"unitIds"`
	Type     string   `json:"type" binding:"required"`
	Duration int      `json:"duration"`
	Topics   string   `json:"topics"`
}
