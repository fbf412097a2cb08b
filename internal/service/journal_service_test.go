package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type stubLogStore struct {
	logs    []models.ClassLog
	created []models.ClassLog
	deleted []string
	listErr error
}

func (s *stubLogStore) List(_ context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if filter.Date == "" {
		return s.logs, nil
	}
	var matched []models.ClassLog
	for _, log := range s.logs {
		if log.Date == filter.Date {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func (s *stubLogStore) CreateBatch(_ context.Context, logs []models.ClassLog) error {
	s.created = append(s.created, logs...)
	return nil
}

func (s *stubLogStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubScheduleResolver struct {
	slots []models.ScheduleSlot
}

func (s *stubScheduleResolver) SlotsForDate(_ context.Context, _ string) ([]models.ScheduleSlot, error) {
	return s.slots, nil
}

func (s *stubScheduleResolver) ScheduledHours(_ context.Context, _, courseID string) (int, error) {
	total := 0
	for _, slot := range s.slots {
		if slot.CourseID == courseID {
			total += slot.DefaultHours
		}
	}
	return total, nil
}

func TestBuildLogEntriesSplitsMixedSession(t *testing.T) {
	entries, err := BuildLogEntries(dto.JournalEntryRequest{
		Date:          "2025-12-15",
		CourseID:      "course-1",
		UnitID:        "ut-1",
		TotalDuration: 3,
		HourDistribution: []models.SessionType{
			models.SessionTheory, models.SessionPractice, models.SessionPractice,
		},
		Status: models.AttendanceDelivered,
		Notes:  "repaso de seguridad",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.SessionTheory, entries[0].Type)
	assert.Equal(t, 1, entries[0].Hours)
	assert.Equal(t, "(Parte Teórica) repaso de seguridad", entries[0].Notes)

	assert.Equal(t, models.SessionPractice, entries[1].Type)
	assert.Equal(t, 2, entries[1].Hours)
	assert.Equal(t, "(Parte Práctica) repaso de seguridad", entries[1].Notes)
}

func TestBuildLogEntriesKeepsPaintOrder(t *testing.T) {
	entries, err := BuildLogEntries(dto.JournalEntryRequest{
		Date:          "2025-12-15",
		CourseID:      "course-1",
		UnitID:        "ut-1",
		TotalDuration: 2,
		HourDistribution: []models.SessionType{
			models.SessionPractice, models.SessionTheory,
		},
		Status: models.AttendanceDelivered,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.SessionPractice, entries[0].Type)
	assert.Equal(t, models.SessionTheory, entries[1].Type)
}

func TestBuildLogEntriesSingleTypeSkipsPrefix(t *testing.T) {
	entries, err := BuildLogEntries(dto.JournalEntryRequest{
		Date:          "2025-12-15",
		CourseID:      "course-1",
		UnitID:        "ut-1",
		TotalDuration: 2,
		HourDistribution: []models.SessionType{
			models.SessionTheory, models.SessionTheory,
		},
		Status: models.AttendanceDelivered,
		Notes:  "teoría completa",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Hours)
	assert.Equal(t, "teoría completa", entries[0].Notes)
}

func TestBuildLogEntriesRejectsMismatchedDistribution(t *testing.T) {
	_, err := BuildLogEntries(dto.JournalEntryRequest{
		Date:             "2025-12-15",
		CourseID:         "course-1",
		UnitID:           "ut-1",
		TotalDuration:    3,
		HourDistribution: []models.SessionType{models.SessionTheory},
		Status:           models.AttendanceDelivered,
	})
	assert.ErrorIs(t, err, appErrors.ErrHourDistribution)
}

func TestBuildLogEntriesRejectsUnknownSessionType(t *testing.T) {
	_, err := BuildLogEntries(dto.JournalEntryRequest{
		Date:             "2025-12-15",
		CourseID:         "course-1",
		UnitID:           "ut-1",
		TotalDuration:    1,
		HourDistribution: []models.SessionType{"Mixta"},
		Status:           models.AttendanceDelivered,
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
}

func TestJournalSavePersistsEntries(t *testing.T) {
	logs := &stubLogStore{}
	svc := NewJournalService(JournalServiceParams{Logs: logs, Schedule: &stubScheduleResolver{}})

	entries, err := svc.Save(context.Background(), dto.JournalEntryRequest{
		Date:          "2025-12-15",
		CourseID:      "course-1",
		UnitID:        "ut-1",
		TotalDuration: 1,
		HourDistribution: []models.SessionType{
			models.SessionPractice,
		},
		Status: models.AttendanceDelivered,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, logs.created, 1)
	assert.Equal(t, "course-1", logs.created[0].CourseID)
}

func TestJournalSaveRejectsBadDate(t *testing.T) {
	svc := NewJournalService(JournalServiceParams{Logs: &stubLogStore{}, Schedule: &stubScheduleResolver{}})

	_, err := svc.Save(context.Background(), dto.JournalEntryRequest{
		Date:             "15/12/2025",
		CourseID:         "course-1",
		UnitID:           "ut-1",
		TotalDuration:    1,
		HourDistribution: []models.SessionType{models.SessionTheory},
		Status:           models.AttendanceDelivered,
	})
	require.Error(t, err)
}

func TestJournalDayBundlesLogsAndSlots(t *testing.T) {
	logs := &stubLogStore{logs: []models.ClassLog{
		{ID: "log-1", Date: "2025-12-15", CourseID: "course-1", Hours: 2},
		{ID: "log-2", Date: "2025-12-16", CourseID: "course-1", Hours: 1},
	}}
	schedule := &stubScheduleResolver{slots: []models.ScheduleSlot{
		{ID: "slot-1", DayOfWeek: 1, CourseID: "course-1", DefaultHours: 2},
	}}
	svc := NewJournalService(JournalServiceParams{Logs: logs, Schedule: schedule})

	day, err := svc.Day(context.Background(), "2025-12-15")
	require.NoError(t, err)
	assert.Equal(t, 1, day.Weekday)
	require.Len(t, day.Logs, 1)
	assert.Equal(t, "log-1", day.Logs[0].ID)
	require.Len(t, day.Slots, 1)
}

func TestJournalScheduledHoursPreFill(t *testing.T) {
	schedule := &stubScheduleResolver{slots: []models.ScheduleSlot{
		{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 2},
		{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 1},
		{DayOfWeek: 1, CourseID: "course-2", DefaultHours: 4},
	}}
	svc := NewJournalService(JournalServiceParams{Logs: &stubLogStore{}, Schedule: schedule})

	resp, err := svc.ScheduledHours(context.Background(), "2025-12-15", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Hours)
}
