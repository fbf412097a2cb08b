package service

import (
	"math"
	"strings"
	"time"

	"github.com/culiplan/culiplan-api/internal/models"
)

// The aggregation engine is a set of pure functions over the raw entity
// slices. Nothing here caches: every caller recomputes from source data, so
// derived values can never go stale. Dangling references (a log pointing at a
// deleted unit or course) contribute zero instead of failing.

const dateLayout = "2006-01-02"

// ISOWeekday returns the weekday of a YYYY-MM-DD date in the 1=Monday ..
// 7=Sunday convention used by the weekly schedule template. It returns 0 for
// unparseable dates.
func ISOWeekday(date string) int {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// UnitRealizedHours sums logged hours for one unit. The legacy
// Unit.HoursRealized field is deliberately ignored; class logs are the only
// source of truth for realized hours.
func UnitRealizedHours(unitID string, logs []models.ClassLog) int {
	total := 0
	for _, l := range logs {
		if l.UnitID == unitID {
			total += l.Hours
		}
	}
	return total
}

// UnitRealizedByType splits a unit's realized hours into theory and practice.
func UnitRealizedByType(unitID string, logs []models.ClassLog) (theory, practice int) {
	for _, l := range logs {
		if l.UnitID != unitID {
			continue
		}
		switch l.Type {
		case models.SessionPractice:
			practice += l.Hours
		default:
			theory += l.Hours
		}
	}
	return theory, practice
}

// UnitPlannedTotal is the unit's combined planned theory and practice hours.
func UnitPlannedTotal(u models.Unit) int {
	return u.HoursPlannedTheory + u.HoursPlannedPractice
}

// CompletionForCourse computes the completion indicator set for one course.
// Denominators are floored at 1 so a zero-hour course reads as 0% instead of
// dividing by zero.
func CompletionForCourse(course models.Course, logs []models.ClassLog, exams []models.Exam) models.CourseCompletion {
	effort := EffortForCourse(course.ID, logs, exams)

	annual := course.AnnualHours
	if annual < 1 {
		annual = 1
	}
	ratio := float64(effort.Total) / float64(annual)

	percent := int(math.Round(ratio * 100))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	planned := 0
	for _, u := range course.Units {
		planned += UnitPlannedTotal(u)
	}
	overage := 0
	if planned > course.AnnualHours {
		overage = planned - course.AnnualHours
	}

	return models.CourseCompletion{
		RealizedHours:  effort.Total,
		Percent:        percent,
		RawRatio:       ratio,
		Exceeded:       ratio > 1,
		PlannedHours:   planned,
		PlannedOverage: overage,
	}
}

// EffortForCourse sums theory, practice and exam hours for one course.
func EffortForCourse(courseID string, logs []models.ClassLog, exams []models.Exam) models.EffortBreakdown {
	var b models.EffortBreakdown
	for _, l := range logs {
		if l.CourseID != courseID {
			continue
		}
		switch l.Type {
		case models.SessionPractice:
			b.Practice += l.Hours
		default:
			b.Theory += l.Hours
		}
	}
	for _, e := range exams {
		if e.CourseID == courseID {
			b.Exams += e.EffectiveDuration()
		}
	}
	b.Total = b.Theory + b.Practice + b.Exams
	return b
}

// IsNonTeaching reports whether a legend item marks its days as lesson-free.
// The explicit flag is authoritative; the color/label test keeps items from
// pre-flag backups and clients behaving the way the legacy calendar did.
func IsNonTeaching(item models.LegendItem) bool {
	if item.NonTeaching {
		return true
	}
	return DeriveNonTeaching(item.Label, item.Color)
}

// DeriveNonTeaching applies the legacy heuristic: holiday red, or a label
// mentioning "festivo" or "inicio".
func DeriveNonTeaching(label, color string) bool {
	if color == models.HolidayColor {
		return true
	}
	lower := strings.ToLower(label)
	return strings.Contains(lower, "festivo") || strings.Contains(lower, "inicio")
}

// StatusForDay reconciles one calendar date: planned hours come from the
// weekly template, logged hours from class logs plus exams on that exact
// date. Weekends and non-teaching days are FREE regardless of entries.
func StatusForDay(date string, schedule []models.ScheduleSlot, logs []models.ClassLog, exams []models.Exam, events []models.CalendarEvent, legend []models.LegendItem) models.DayStatus {
	status := models.DayStatus{Date: date, Status: models.DayFree}

	weekday := ISOWeekday(date)
	if weekday == 0 || weekday > 5 {
		return status
	}

	legendByID := make(map[string]models.LegendItem, len(legend))
	for _, item := range legend {
		legendByID[item.ID] = item
	}
	for _, evt := range events {
		if evt.Date != date {
			continue
		}
		if item, ok := legendByID[evt.LegendItemID]; ok && IsNonTeaching(item) {
			return status
		}
	}

	planned := 0
	for _, slot := range schedule {
		if slot.DayOfWeek == weekday {
			planned += slot.DefaultHours
		}
	}
	if planned == 0 {
		return status
	}

	logged := 0
	for _, l := range logs {
		if l.Date == date {
			logged += l.Hours
		}
	}
	for _, e := range exams {
		if e.Date == date {
			logged += e.EffectiveDuration()
		}
	}

	status.Planned = planned
	status.Logged = logged
	switch {
	case logged >= planned:
		status.Status = models.DayCompleted
	case logged > 0:
		status.Status = models.DayPartial
	default:
		status.Status = models.DayMissing
	}
	return status
}

// ProgressForLearningResult aggregates realized against planned hours over
// the distinct units linked from any criterion of the RA. Linked unit ids
// that no longer resolve to a unit contribute nothing but stay listed.
func ProgressForLearningResult(ra models.LearningResult, units []models.Unit, logs []models.ClassLog) models.LearningResultProgress {
	progress := models.LearningResultProgress{ResultID: ra.ID, Codigo: ra.Codigo}

	seen := make(map[string]bool)
	for _, crit := range ra.Criterios {
		for _, link := range crit.Links {
			if link.UnitID == "" || seen[link.UnitID] {
				continue
			}
			seen[link.UnitID] = true
			progress.UnitIDs = append(progress.UnitIDs, link.UnitID)
		}
	}
	if len(progress.UnitIDs) == 0 {
		return progress
	}
	progress.Linked = true

	unitByID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		unitByID[u.ID] = u
	}
	for _, id := range progress.UnitIDs {
		u, ok := unitByID[id]
		if !ok {
			continue
		}
		progress.PlannedHours += UnitPlannedTotal(u)
		progress.RealizedHours += UnitRealizedHours(id, logs)
	}

	planned := progress.PlannedHours
	if planned < 1 {
		planned = 1
	}
	progress.Percent = int(math.Round(float64(progress.RealizedHours) / float64(planned) * 100))
	return progress
}
