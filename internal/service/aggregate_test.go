package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/models"
)

func TestISOWeekdayConvention(t *testing.T) {
	// 2025-12-15 is a Monday, 2025-12-21 a Sunday.
	assert.Equal(t, 1, ISOWeekday("2025-12-15"))
	assert.Equal(t, 2, ISOWeekday("2025-12-16"))
	assert.Equal(t, 6, ISOWeekday("2025-12-20"))
	assert.Equal(t, 7, ISOWeekday("2025-12-21"))
	assert.Equal(t, 0, ISOWeekday("not-a-date"))
}

func TestUnitRealizedHoursIgnoresLegacyCache(t *testing.T) {
	logs := []models.ClassLog{
		{UnitID: "ut-1", Hours: 3},
		{UnitID: "ut-1", Hours: 2},
		{UnitID: "ut-2", Hours: 7},
	}
	assert.Equal(t, 5, UnitRealizedHours("ut-1", logs))
	assert.Equal(t, 0, UnitRealizedHours("ut-missing", logs))
}

func TestCompletionForCourseClampAndOverage(t *testing.T) {
	course := models.Course{
		ID:          "c-1",
		AnnualHours: 350,
		Units: []models.Unit{
			{ID: "ut-1", HoursPlannedTheory: 200, HoursPlannedPractice: 100},
			{ID: "ut-2", HoursPlannedTheory: 30, HoursPlannedPractice: 30},
		},
	}
	logs := []models.ClassLog{{CourseID: "c-1", UnitID: "ut-1", Hours: 370, Type: models.SessionTheory}}

	completion := CompletionForCourse(course, logs, nil)
	assert.Equal(t, 100, completion.Percent)
	assert.True(t, completion.Exceeded)
	assert.Greater(t, completion.RawRatio, 1.0)
	assert.Equal(t, 360, completion.PlannedHours)
	assert.Equal(t, 10, completion.PlannedOverage)
}

func TestCompletionForCourseZeroAnnualHours(t *testing.T) {
	completion := CompletionForCourse(models.Course{ID: "c-1"}, nil, nil)
	assert.Equal(t, 0, completion.Percent)
	assert.False(t, completion.Exceeded)
}

func TestEffortForCourseSplitsByOrigin(t *testing.T) {
	logs := []models.ClassLog{
		{CourseID: "c-1", Hours: 4, Type: models.SessionTheory},
		{CourseID: "c-1", Hours: 3, Type: models.SessionPractice},
		{CourseID: "c-2", Hours: 9, Type: models.SessionTheory},
	}
	exams := []models.Exam{
		{CourseID: "c-1", Duration: 2},
		{CourseID: "c-1", Duration: 0}, // legacy record, counts as 1h
	}

	effort := EffortForCourse("c-1", logs, exams)
	assert.Equal(t, 4, effort.Theory)
	assert.Equal(t, 3, effort.Practice)
	assert.Equal(t, 3, effort.Exams)
	assert.Equal(t, 10, effort.Total)
}

func TestStatusForDayFreeWithoutSlots(t *testing.T) {
	// Wednesday with no template entries stays FREE even with logged hours.
	logs := []models.ClassLog{{Date: "2025-12-17", Hours: 4}}
	status := StatusForDay("2025-12-17", nil, logs, nil, nil, nil)
	assert.Equal(t, models.DayFree, status.Status)
	assert.Equal(t, 0, status.Planned)
}

func TestStatusForDayWeekend(t *testing.T) {
	schedule := []models.ScheduleSlot{{DayOfWeek: 6, DefaultHours: 4}}
	status := StatusForDay("2025-12-20", schedule, nil, nil, nil, nil)
	assert.Equal(t, models.DayFree, status.Status)
}

func TestStatusForDayNonTeachingEvent(t *testing.T) {
	schedule := []models.ScheduleSlot{{DayOfWeek: 3, DefaultHours: 5}}
	legend := []models.LegendItem{{ID: "leg-1", Label: "Festivo / No Lectivo", Color: models.HolidayColor, NonTeaching: true}}
	events := []models.CalendarEvent{{ID: "evt-1", Date: "2025-12-17", LegendItemID: "leg-1"}}

	status := StatusForDay("2025-12-17", schedule, nil, nil, events, legend)
	assert.Equal(t, models.DayFree, status.Status)
}

func TestStatusForDayLegacyHolidayHeuristic(t *testing.T) {
	schedule := []models.ScheduleSlot{{DayOfWeek: 3, DefaultHours: 5}}
	legend := []models.LegendItem{{ID: "leg-1", Label: "Inicio de curso", Color: "#2563EB"}}
	events := []models.CalendarEvent{{ID: "evt-1", Date: "2025-12-17", LegendItemID: "leg-1"}}

	status := StatusForDay("2025-12-17", schedule, nil, nil, events, legend)
	assert.Equal(t, models.DayFree, status.Status)
}

func TestStatusForDayProgression(t *testing.T) {
	schedule := []models.ScheduleSlot{
		{DayOfWeek: 1, DefaultHours: 2},
		{DayOfWeek: 1, DefaultHours: 2},
	}
	monday := "2025-12-15"

	missing := StatusForDay(monday, schedule, nil, nil, nil, nil)
	assert.Equal(t, models.DayMissing, missing.Status)
	assert.Equal(t, 4, missing.Planned)

	partial := StatusForDay(monday, schedule, []models.ClassLog{{Date: monday, Hours: 2}}, nil, nil, nil)
	assert.Equal(t, models.DayPartial, partial.Status)
	assert.Equal(t, 2, partial.Logged)

	logs := []models.ClassLog{{Date: monday, Hours: 3}}
	exams := []models.Exam{{Date: monday, Duration: 1}}
	completed := StatusForDay(monday, schedule, logs, exams, nil, nil)
	assert.Equal(t, models.DayCompleted, completed.Status)
	assert.Equal(t, 4, completed.Logged)
}

func TestProgressForLearningResultUnlinked(t *testing.T) {
	ra := models.LearningResult{ID: "ra-1", Codigo: "RA1"}
	progress := ProgressForLearningResult(ra, nil, nil)
	assert.False(t, progress.Linked)
	assert.Equal(t, 0, progress.Percent)
}

func TestProgressForLearningResultCoverage(t *testing.T) {
	ra := models.LearningResult{
		ID:     "ra-1",
		Codigo: "RA1",
		Criterios: []models.Criterion{
			{ID: "ce-1", Links: []models.CriterionLink{{UnitID: "ut-1"}}},
			{ID: "ce-2", Links: []models.CriterionLink{{UnitID: "ut-1"}}}, // duplicate link, counted once
		},
	}
	units := []models.Unit{{ID: "ut-1", HoursPlannedTheory: 10, HoursPlannedPractice: 10}}
	logs := []models.ClassLog{
		{UnitID: "ut-1", Hours: 9},
		{UnitID: "ut-1", Hours: 6},
	}

	progress := ProgressForLearningResult(ra, units, logs)
	require.True(t, progress.Linked)
	assert.Equal(t, []string{"ut-1"}, progress.UnitIDs)
	assert.Equal(t, 20, progress.PlannedHours)
	assert.Equal(t, 15, progress.RealizedHours)
	assert.Equal(t, 75, progress.Percent)
}

func TestProgressForLearningResultDanglingUnit(t *testing.T) {
	ra := models.LearningResult{
		ID:        "ra-1",
		Criterios: []models.Criterion{{ID: "ce-1", Links: []models.CriterionLink{{UnitID: "ut-gone"}}}},
	}
	progress := ProgressForLearningResult(ra, nil, nil)
	assert.True(t, progress.Linked)
	assert.Equal(t, 0, progress.PlannedHours)
	assert.Equal(t, 0, progress.Percent)
}
