package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type stubCourseLister struct{ courses []models.Course }

func (s *stubCourseLister) List(_ context.Context) ([]models.Course, error) {
	return s.courses, nil
}

type stubDashboardCache struct {
	stored map[string]dto.DashboardSummary
	hits   int
	writes int
}

func (s *stubDashboardCache) GetJSON(_ context.Context, key string, dest any) error {
	cached, ok := s.stored[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	s.hits++
	*dest.(*dto.DashboardSummary) = cached
	return nil
}

func (s *stubDashboardCache) SetJSON(_ context.Context, key string, value any) error {
	if s.stored == nil {
		s.stored = make(map[string]dto.DashboardSummary)
	}
	s.stored[key] = value.(dto.DashboardSummary)
	s.writes++
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC)
}

func TestDashboardSummaryComposesCourses(t *testing.T) {
	courses := &stubCourseLister{courses: []models.Course{
		{
			ID:          "course-1",
			Name:        "Procesos de Cocina",
			AnnualHours: 350,
			Units: []models.Unit{
				{ID: "ut-1", HoursPlannedTheory: 20, HoursPlannedPractice: 40, Status: models.UnitCompleted, Trimestres: []int{1}},
				{ID: "ut-2", HoursPlannedTheory: 10, HoursPlannedPractice: 30, Status: models.UnitInProgress, Trimestres: []int{2}},
			},
		},
	}}
	logs := &stubLogLister{logs: []models.ClassLog{
		{Date: "2025-12-15", CourseID: "course-1", UnitID: "ut-1", Hours: 3, Type: models.SessionTheory},
	}}
	exams := &stubExamLister{exams: []models.Exam{
		{ID: "ex-1", Date: "2025-12-20", CourseID: "course-1", Duration: 2},
		{ID: "ex-old", Date: "2025-11-01", CourseID: "course-1", Duration: 1},
	}}

	svc := NewDashboardService(DashboardServiceParams{
		Courses: courses,
		Logs:    logs,
		Exams:   exams,
		Now:     fixedNow,
	})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.UnitStatus.Completed)
	assert.Equal(t, 1, summary.UnitStatus.InProgress)
	assert.Equal(t, 100, summary.TotalHoursPlanned)
	// 3 logged hours plus both exam durations.
	assert.Equal(t, 6, summary.TotalHoursLogged)
	require.Len(t, summary.Courses, 1)
	assert.Equal(t, 2, summary.Courses[0].Units)
	assert.Equal(t, 1, summary.Courses[0].UnitsDone)
	require.Len(t, summary.RecentDays, 7)
	assert.Equal(t, 3, summary.RecentDays[6].Hours)

	// Only the future exam qualifies as upcoming.
	require.Len(t, summary.UpcomingExams, 1)
	assert.Equal(t, "ex-1", summary.UpcomingExams[0].ID)
}

func TestDashboardRecentActivityUsesLocalCalendarDay(t *testing.T) {
	// Half past eleven at night in a UTC+1 zone is already the next day
	// in UTC, so the series must be anchored on the local date.
	lateEvening := func() time.Time {
		return time.Date(2025, 12, 15, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	}
	logs := &stubLogLister{logs: []models.ClassLog{
		{Date: "2025-12-15", CourseID: "course-1", UnitID: "ut-1", Hours: 4, Type: models.SessionPractice},
	}}

	svc := NewDashboardService(DashboardServiceParams{
		Courses: &stubCourseLister{},
		Logs:    logs,
		Exams:   &stubExamLister{},
		Now:     lateEvening,
	})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.RecentDays, 7)
	assert.Equal(t, "2025-12-15", summary.RecentDays[6].Date)
	assert.Equal(t, 4, summary.RecentDays[6].Hours)
	assert.Equal(t, "2025-12-09", summary.RecentDays[0].Date)
}

func TestDashboardSummaryServesFromCache(t *testing.T) {
	cache := &stubDashboardCache{}
	svc := NewDashboardService(DashboardServiceParams{
		Courses: &stubCourseLister{},
		Logs:    &stubLogLister{},
		Exams:   &stubExamLister{},
		Cache:   cache,
		Now:     fixedNow,
	})

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.writes)

	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}
