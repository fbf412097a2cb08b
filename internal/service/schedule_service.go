package service

import (
	"context"
	"fmt"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type scheduleStore interface {
	List(ctx context.Context) ([]models.ScheduleSlot, error)
	ReplaceAll(ctx context.Context, slots []models.ScheduleSlot) error
}

// ScheduleService resolves the weekly timetable template.
type ScheduleService struct {
	slots scheduleStore
}

type ScheduleServiceParams struct {
	Slots scheduleStore
}

func NewScheduleService(params ScheduleServiceParams) *ScheduleService {
	return &ScheduleService{slots: params.Slots}
}

// Template returns every slot in template order.
func (s *ScheduleService) Template(ctx context.Context) ([]models.ScheduleSlot, error) {
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// ReplaceTemplate swaps the whole weekly template atomically.
func (s *ScheduleService) ReplaceTemplate(ctx context.Context, slots []models.ScheduleSlot) error {
	for i := range slots {
		if slots[i].DayOfWeek < 1 || slots[i].DayOfWeek > 7 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %d: dayOfWeek must be between 1 and 7", i))
		}
	}
	if err := s.slots.ReplaceAll(ctx, slots); err != nil {
		return fmt.Errorf("replace schedule template: %w", err)
	}
	return nil
}

// SlotsForDate returns the template slots whose weekday matches date,
// preserving template order. An unparseable date yields no slots.
func (s *ScheduleService) SlotsForDate(ctx context.Context, date string) ([]models.ScheduleSlot, error) {
	weekday := ISOWeekday(date)
	if weekday == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	matched := make([]models.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek == weekday {
			matched = append(matched, slot)
		}
	}
	return matched, nil
}

// ScheduledHours sums the default hours planned for a course on a date.
func (s *ScheduleService) ScheduledHours(ctx context.Context, date, courseID string) (int, error) {
	slots, err := s.SlotsForDate(ctx, date)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, slot := range slots {
		if slot.CourseID == courseID {
			total += slot.DefaultHours
		}
	}
	return total, nil
}
