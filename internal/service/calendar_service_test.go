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

type stubLegendStore struct {
	items   []models.LegendItem
	deleted []string
}

func (s *stubLegendStore) List(_ context.Context) ([]models.LegendItem, error) {
	return s.items, nil
}

func (s *stubLegendStore) FindByID(_ context.Context, id string) (*models.LegendItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s *stubLegendStore) Create(_ context.Context, item *models.LegendItem) error {
	item.ID = "leg-created"
	s.items = append(s.items, *item)
	return nil
}

func (s *stubLegendStore) Update(_ context.Context, item *models.LegendItem) error {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = *item
		}
	}
	return nil
}

func (s *stubLegendStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubEventStore struct {
	events         []models.CalendarEvent
	deleted        []string
	legendCascades []string
}

func (s *stubEventStore) List(_ context.Context) ([]models.CalendarEvent, error) {
	return s.events, nil
}

func (s *stubEventStore) FindByDateAndLegend(_ context.Context, date, legendItemID string) (*models.CalendarEvent, error) {
	for i := range s.events {
		if s.events[i].Date == date && s.events[i].LegendItemID == legendItemID {
			return &s.events[i], nil
		}
	}
	return nil, nil
}

func (s *stubEventStore) Create(_ context.Context, event *models.CalendarEvent) error {
	event.ID = "ev-created"
	s.events = append(s.events, *event)
	return nil
}

func (s *stubEventStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubEventStore) DeleteByLegendItem(_ context.Context, legendItemID string) error {
	s.legendCascades = append(s.legendCascades, legendItemID)
	return nil
}

type stubSlotLister struct{ slots []models.ScheduleSlot }

func (s *stubSlotLister) List(_ context.Context) ([]models.ScheduleSlot, error) {
	return s.slots, nil
}

type stubLogLister struct{ logs []models.ClassLog }

func (s *stubLogLister) List(_ context.Context, _ models.ClassLogFilter) ([]models.ClassLog, error) {
	return s.logs, nil
}

type stubExamLister struct{ exams []models.Exam }

func (s *stubExamLister) List(_ context.Context) ([]models.Exam, error) {
	return s.exams, nil
}

func newCalendarService(legend *stubLegendStore, events *stubEventStore) *CalendarService {
	return NewCalendarService(CalendarServiceParams{
		Legend:   legend,
		Events:   events,
		Schedule: &stubSlotLister{},
		Logs:     &stubLogLister{},
		Exams:    &stubExamLister{},
	})
}

func TestToggleEventAddsWhenAbsent(t *testing.T) {
	legend := &stubLegendStore{items: []models.LegendItem{{ID: "leg-1", Label: "Festivo"}}}
	events := &stubEventStore{}
	svc := newCalendarService(legend, events)

	resp, err := svc.ToggleEvent(context.Background(), dto.ToggleEventRequest{
		Date: "2025-12-17", LegendItemID: "leg-1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Added)
	require.NotNil(t, resp.Event)
	require.Len(t, events.events, 1)
}

func TestToggleEventRemovesWhenPresent(t *testing.T) {
	legend := &stubLegendStore{items: []models.LegendItem{{ID: "leg-1", Label: "Festivo"}}}
	events := &stubEventStore{events: []models.CalendarEvent{
		{ID: "ev-1", Date: "2025-12-17", LegendItemID: "leg-1"},
	}}
	svc := newCalendarService(legend, events)

	resp, err := svc.ToggleEvent(context.Background(), dto.ToggleEventRequest{
		Date: "2025-12-17", LegendItemID: "leg-1",
	})
	require.NoError(t, err)
	assert.False(t, resp.Added)
	assert.Nil(t, resp.Event)
	assert.Equal(t, []string{"ev-1"}, events.deleted)
}

func TestToggleEventRejectsUnknownLegendItem(t *testing.T) {
	svc := newCalendarService(&stubLegendStore{}, &stubEventStore{})

	_, err := svc.ToggleEvent(context.Background(), dto.ToggleEventRequest{
		Date: "2025-12-17", LegendItemID: "missing",
	})
	assert.ErrorIs(t, err, appErrors.ErrUnknownLegendItem)
}

func TestCreateLegendItemDerivesNonTeaching(t *testing.T) {
	legend := &stubLegendStore{}
	svc := newCalendarService(legend, &stubEventStore{})

	item, err := svc.CreateLegendItem(context.Background(), dto.LegendItemRequest{
		Label: "Festivo local", Color: "#00FF00",
	})
	require.NoError(t, err)
	assert.True(t, item.NonTeaching)
}

func TestCreateLegendItemHonorsExplicitFlag(t *testing.T) {
	legend := &stubLegendStore{}
	svc := newCalendarService(legend, &stubEventStore{})

	explicit := false
	item, err := svc.CreateLegendItem(context.Background(), dto.LegendItemRequest{
		Label: "Festivo local", Color: models.HolidayColor, NonTeaching: &explicit,
	})
	require.NoError(t, err)
	assert.False(t, item.NonTeaching)
}

func TestDeleteLegendItemCascadesEvents(t *testing.T) {
	legend := &stubLegendStore{items: []models.LegendItem{{ID: "leg-1", Label: "Festivo"}}}
	events := &stubEventStore{}
	svc := newCalendarService(legend, events)

	require.NoError(t, svc.DeleteLegendItem(context.Background(), "leg-1"))
	assert.Equal(t, []string{"leg-1"}, events.legendCascades)
	assert.Equal(t, []string{"leg-1"}, legend.deleted)
}

func TestDayStatusRangeComputesEveryDate(t *testing.T) {
	legend := &stubLegendStore{items: []models.LegendItem{
		{ID: "leg-1", Label: "Festivo", NonTeaching: true},
	}}
	events := &stubEventStore{events: []models.CalendarEvent{
		{ID: "ev-1", Date: "2025-12-16", LegendItemID: "leg-1"},
	}}
	svc := NewCalendarService(CalendarServiceParams{
		Legend: legend,
		Events: events,
		Schedule: &stubSlotLister{slots: []models.ScheduleSlot{
			{DayOfWeek: 1, CourseID: "course-1", DefaultHours: 2},
			{DayOfWeek: 2, CourseID: "course-1", DefaultHours: 2},
		}},
		Logs: &stubLogLister{logs: []models.ClassLog{
			{Date: "2025-12-15", CourseID: "course-1", Hours: 2},
		}},
		Exams: &stubExamLister{},
	})

	resp, err := svc.DayStatusRange(context.Background(), "2025-12-15", "2025-12-21")
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	// Monday fully logged, Tuesday tagged festivo, Sunday weekend.
	assert.Equal(t, models.DayCompleted, resp.Days[0].Status)
	assert.Equal(t, models.DayFree, resp.Days[1].Status)
	assert.Equal(t, models.DayFree, resp.Days[6].Status)
}

func TestDayStatusRangeRejectsInvertedRange(t *testing.T) {
	svc := newCalendarService(&stubLegendStore{}, &stubEventStore{})
	_, err := svc.DayStatusRange(context.Background(), "2025-12-21", "2025-12-15")
	require.Error(t, err)
}
