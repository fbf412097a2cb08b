package service

import (
	"context"
	"fmt"
	"time"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type legendStore interface {
	List(ctx context.Context) ([]models.LegendItem, error)
	FindByID(ctx context.Context, id string) (*models.LegendItem, error)
	Create(ctx context.Context, item *models.LegendItem) error
	Update(ctx context.Context, item *models.LegendItem) error
	Delete(ctx context.Context, id string) error
}

type eventStore interface {
	List(ctx context.Context) ([]models.CalendarEvent, error)
	FindByDateAndLegend(ctx context.Context, date, legendItemID string) (*models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	DeleteByLegendItem(ctx context.Context, legendItemID string) error
}

type trackingScheduleLister interface {
	List(ctx context.Context) ([]models.ScheduleSlot, error)
}

type trackingLogLister interface {
	List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error)
}

type trackingExamLister interface {
	List(ctx context.Context) ([]models.Exam, error)
}

// CalendarService owns the school calendar: the legend, day tags and the
// per-day tracking state the calendar view paints.
type CalendarService struct {
	legend   legendStore
	events   eventStore
	schedule trackingScheduleLister
	logs     trackingLogLister
	exams    trackingExamLister
}

type CalendarServiceParams struct {
	Legend   legendStore
	Events   eventStore
	Schedule trackingScheduleLister
	Logs     trackingLogLister
	Exams    trackingExamLister
}

func NewCalendarService(params CalendarServiceParams) *CalendarService {
	return &CalendarService{
		legend:   params.Legend,
		events:   params.Events,
		schedule: params.Schedule,
		logs:     params.Logs,
		exams:    params.Exams,
	}
}

// maxTrackingRangeDays caps a single day-status query.
const maxTrackingRangeDays = 400

// Legend returns every legend item in creation order.
func (s *CalendarService) Legend(ctx context.Context) ([]models.LegendItem, error) {
	items, err := s.legend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list legend items: %w", err)
	}
	return items, nil
}

func resolveNonTeaching(req dto.LegendItemRequest) bool {
	if req.NonTeaching != nil {
		return *req.NonTeaching
	}
	return DeriveNonTeaching(req.Label, req.Color)
}

// CreateLegendItem stores a new legend entry. When the request leaves the
// non-teaching flag out it is derived from the legacy color/label rule.
func (s *CalendarService) CreateLegendItem(ctx context.Context, req dto.LegendItemRequest) (models.LegendItem, error) {
	item := models.LegendItem{
		Label:       req.Label,
		Color:       req.Color,
		NonTeaching: resolveNonTeaching(req),
	}
	if err := s.legend.Create(ctx, &item); err != nil {
		return models.LegendItem{}, fmt.Errorf("create legend item: %w", err)
	}
	return item, nil
}

// UpdateLegendItem replaces a legend entry.
func (s *CalendarService) UpdateLegendItem(ctx context.Context, id string, req dto.LegendItemRequest) (models.LegendItem, error) {
	existing, err := s.legend.FindByID(ctx, id)
	if err != nil {
		return models.LegendItem{}, fmt.Errorf("find legend item %s: %w", id, err)
	}
	if existing == nil {
		return models.LegendItem{}, appErrors.ErrNotFound
	}
	item := models.LegendItem{
		ID:          id,
		Label:       req.Label,
		Color:       req.Color,
		NonTeaching: resolveNonTeaching(req),
	}
	if err := s.legend.Update(ctx, &item); err != nil {
		return models.LegendItem{}, fmt.Errorf("update legend item %s: %w", id, err)
	}
	return item, nil
}

// DeleteLegendItem removes a legend entry and every day tagged with it.
func (s *CalendarService) DeleteLegendItem(ctx context.Context, id string) error {
	existing, err := s.legend.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find legend item %s: %w", id, err)
	}
	if existing == nil {
		return appErrors.ErrNotFound
	}
	if err := s.events.DeleteByLegendItem(ctx, id); err != nil {
		return fmt.Errorf("cascade events for legend item %s: %w", id, err)
	}
	if err := s.legend.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete legend item %s: %w", id, err)
	}
	return nil
}

// Events returns every tagged day.
func (s *CalendarService) Events(ctx context.Context) ([]models.CalendarEvent, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

// ToggleEvent adds the (date, legend item) tag when absent and removes it
// when present, mirroring a click on the calendar grid.
func (s *CalendarService) ToggleEvent(ctx context.Context, req dto.ToggleEventRequest) (dto.ToggleEventResponse, error) {
	if ISOWeekday(req.Date) == 0 {
		return dto.ToggleEventResponse{}, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	item, err := s.legend.FindByID(ctx, req.LegendItemID)
	if err != nil {
		return dto.ToggleEventResponse{}, fmt.Errorf("find legend item %s: %w", req.LegendItemID, err)
	}
	if item == nil {
		return dto.ToggleEventResponse{}, appErrors.ErrUnknownLegendItem
	}

	existing, err := s.events.FindByDateAndLegend(ctx, req.Date, req.LegendItemID)
	if err != nil {
		return dto.ToggleEventResponse{}, fmt.Errorf("find calendar event: %w", err)
	}
	if existing != nil {
		if err := s.events.Delete(ctx, existing.ID); err != nil {
			return dto.ToggleEventResponse{}, fmt.Errorf("delete calendar event %s: %w", existing.ID, err)
		}
		return dto.ToggleEventResponse{Added: false}, nil
	}

	event := models.CalendarEvent{Date: req.Date, LegendItemID: req.LegendItemID}
	if err := s.events.Create(ctx, &event); err != nil {
		return dto.ToggleEventResponse{}, fmt.Errorf("create calendar event: %w", err)
	}
	return dto.ToggleEventResponse{Added: true, Event: &event}, nil
}

// DayStatusRange computes the tracking state for every date in [from, to].
func (s *CalendarService) DayStatusRange(ctx context.Context, from, to string) (dto.DayStatusRangeResponse, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return dto.DayStatusRangeResponse{}, appErrors.Clone(appErrors.ErrValidation, "from must use YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return dto.DayStatusRangeResponse{}, appErrors.Clone(appErrors.ErrValidation, "to must use YYYY-MM-DD format")
	}
	if end.Before(start) {
		return dto.DayStatusRangeResponse{}, appErrors.Clone(appErrors.ErrValidation, "to must not precede from")
	}
	if int(end.Sub(start).Hours()/24) > maxTrackingRangeDays {
		return dto.DayStatusRangeResponse{}, appErrors.Clone(appErrors.ErrValidation, "date range too large")
	}

	slots, err := s.schedule.List(ctx)
	if err != nil {
		return dto.DayStatusRangeResponse{}, fmt.Errorf("list schedule slots: %w", err)
	}
	logs, err := s.logs.List(ctx, models.ClassLogFilter{FromDate: from, ToDate: to})
	if err != nil {
		return dto.DayStatusRangeResponse{}, fmt.Errorf("list class logs: %w", err)
	}
	exams, err := s.exams.List(ctx)
	if err != nil {
		return dto.DayStatusRangeResponse{}, fmt.Errorf("list exams: %w", err)
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return dto.DayStatusRangeResponse{}, fmt.Errorf("list calendar events: %w", err)
	}
	legend, err := s.legend.List(ctx)
	if err != nil {
		return dto.DayStatusRangeResponse{}, fmt.Errorf("list legend items: %w", err)
	}

	days := make([]models.DayStatus, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		days = append(days, StatusForDay(date, slots, logs, exams, events, legend))
	}
	return dto.DayStatusRangeResponse{From: from, To: to, Days: days}, nil
}
