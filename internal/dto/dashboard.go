package dto

import "github.com/culiplan/culiplan-api/internal/models"

// UnitStatusCounts tallies units by their teacher-set status.
type UnitStatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Delayed    int `json:"delayed"`
	Pending    int `json:"pending"`
}

// DayHours is one point of the recent-activity series.
type DayHours struct {
	Date  string `json:"date"`
	Hours int    `json:"hours"`
}

// CourseOverview is one dashboard progress card.
type CourseOverview struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Color      string                   `json:"color,omitempty"`
	Units      int                      `json:"units"`
	UnitsDone  int                      `json:"unitsDone"`
	Effort     models.EffortBreakdown  `json:"effort"`
	Completion models.CourseCompletion `json:"completion"`
}

// DashboardSummary is the composed dashboard payload.
type DashboardSummary struct {
	UnitStatus        UnitStatusCounts `json:"unitStatus"`
	TotalHoursPlanned int              `json:"totalHoursPlanned"`
	TotalHoursLogged  int              `json:"totalHoursLogged"`
	RecentDays        []DayHours       `json:"recentDays"`
	Courses           []CourseOverview `json:"courses"`
	UpcomingExams     []models.Exam    `json:"upcomingExams"`
}
