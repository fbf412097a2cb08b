package dto

import "github.com/culiplan/culiplan-api/internal/models"

// JournalEntryRequest is one save action in the daily journal. The hour
// distribution paints each hour of the session as theory or practice; the
// builder splits it into at most two class logs.
type JournalEntryRequest struct {
	Date             string                  `json:"date" binding:"required"`
	CourseID         string                  `json:"courseId" binding:"required"`
	UnitID           string                  `json:"unitId" binding:"required"`
	TotalDuration    int                     `json:"totalDuration" binding:"required,min=1"`
	HourDistribution []models.SessionType    `json:"hourDistribution" binding:"required"`
	Status           models.AttendanceStatus `json:"status" binding:"required"`
	Notes            string                  `json:"notes"`
}

// JournalDayResponse bundles everything the journal view needs for a date:
// logs already recorded plus the weekly template resolved for that day.
type JournalDayResponse struct {
	Date    string                `json:"date"`
	Weekday int                   `json:"weekday"`
	Logs    []models.ClassLog     `json:"logs"`
	Slots   []models.ScheduleSlot `json:"slots"`
}

// ScheduledHoursResponse pre-fills a journal entry's duration from the
// template when the teacher quick-selects a scheduled class.
type ScheduledHoursResponse struct {
	Date     string `json:"date"`
	CourseID string `json:"courseId"`
	Hours    int    `json:"hours"`
}
