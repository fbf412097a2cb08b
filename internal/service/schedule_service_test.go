package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/models"
)

type stubScheduleStore struct {
	slots    []models.ScheduleSlot
	replaced []models.ScheduleSlot
}

func (s *stubScheduleStore) List(_ context.Context) ([]models.ScheduleSlot, error) {
	return s.slots, nil
}

func (s *stubScheduleStore) ReplaceAll(_ context.Context, slots []models.ScheduleSlot) error {
	s.replaced = slots
	s.slots = slots
	return nil
}

func TestSlotsForDatePreservesTemplateOrder(t *testing.T) {
	store := &stubScheduleStore{slots: []models.ScheduleSlot{
		{ID: "slot-a", DayOfWeek: 1, StartTime: "10:00", CourseID: "course-1"},
		{ID: "slot-b", DayOfWeek: 2, StartTime: "08:00", CourseID: "course-1"},
		{ID: "slot-c", DayOfWeek: 1, StartTime: "08:00", CourseID: "course-2"},
	}}
	svc := NewScheduleService(ScheduleServiceParams{Slots: store})

	// 2025-12-15 is a Monday.
	slots, err := svc.SlotsForDate(context.Background(), "2025-12-15")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "slot-a", slots[0].ID)
	assert.Equal(t, "slot-c", slots[1].ID)
}

func TestSlotsForDateRejectsBadDate(t *testing.T) {
	svc := NewScheduleService(ScheduleServiceParams{Slots: &stubScheduleStore{}})
	_, err := svc.SlotsForDate(context.Background(), "diciembre 15")
	require.Error(t, err)
}

func TestScheduledHoursSumsCourseSlots(t *testing.T) {
	store := &stubScheduleStore{slots: []models.ScheduleSlot{
		{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 2},
		{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 1},
		{DayOfWeek: 1, CourseID: "course-2", DefaultHours: 3},
		{DayOfWeek: 3, CourseID: "course-1", DefaultHours: 5},
	}}
	svc := NewScheduleService(ScheduleServiceParams{Slots: store})

	hours, err := svc.ScheduledHours(context.Background(), "2025-12-15", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 3, hours)
}

func TestReplaceTemplateValidatesWeekday(t *testing.T) {
	store := &stubScheduleStore{}
	svc := NewScheduleService(ScheduleServiceParams{Slots: store})

	err := svc.ReplaceTemplate(context.Background(), []models.ScheduleSlot{
		{DayOfWeek: 8, CourseID: "course-1"},
	})
	require.Error(t, err)
	assert.Empty(t, store.replaced)
}

func TestReplaceTemplateStoresSlots(t *testing.T) {
	store := &stubScheduleStore{}
	svc := NewScheduleService(ScheduleServiceParams{Slots: store})

	err := svc.ReplaceTemplate(context.Background(), []models.ScheduleSlot{
		{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 2},
		{DayOfWeek: 5, CourseID: "course-2", DefaultHours: 1},
	})
	require.NoError(t, err)
	require.Len(t, store.replaced, 2)
}
