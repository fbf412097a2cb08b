package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type journalLogStore interface {
	List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error)
	CreateBatch(ctx context.Context, logs []models.ClassLog) error
	Delete(ctx context.Context, id string) error
}

type journalScheduleResolver interface {
	SlotsForDate(ctx context.Context, date string) ([]models.ScheduleSlot, error)
	ScheduledHours(ctx context.Context, date, courseID string) (int, error)
}

// JournalService owns the daily class journal: recording sessions,
// resolving the day view and deleting entries.
type JournalService struct {
	logs     journalLogStore
	schedule journalScheduleResolver
}

type JournalServiceParams struct {
	Logs     journalLogStore
	Schedule journalScheduleResolver
}

func NewJournalService(params JournalServiceParams) *JournalService {
	return &JournalService{
		logs:     params.Logs,
		schedule: params.Schedule,
	}
}

const (
	theoryNotePrefix   = "(Parte Teórica) "
	practiceNotePrefix = "(Parte Práctica) "
)

// BuildLogEntries turns one journal save into class log rows. Consecutive
// hours of the same session type collapse into a single row, so a mixed
// session yields one theory row and one practice row. Note prefixes mark
// the halves only when both types are present.
func BuildLogEntries(req dto.JournalEntryRequest) ([]models.ClassLog, error) {
	if len(req.HourDistribution) != req.TotalDuration {
		return nil, appErrors.ErrHourDistribution
	}
	for _, sessionType := range req.HourDistribution {
		if sessionType != models.SessionTheory && sessionType != models.SessionPractice {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown session type %q", sessionType))
		}
	}

	theoryHours := 0
	practiceHours := 0
	for _, sessionType := range req.HourDistribution {
		if sessionType == models.SessionTheory {
			theoryHours++
		} else {
			practiceHours++
		}
	}
	mixed := theoryHours > 0 && practiceHours > 0

	entries := make([]models.ClassLog, 0, 2)
	appendEntry := func(sessionType models.SessionType, hours int) {
		if hours == 0 {
			return
		}
		notes := req.Notes
		if mixed {
			if sessionType == models.SessionTheory {
				notes = theoryNotePrefix + notes
			} else {
				notes = practiceNotePrefix + notes
			}
		}
		entries = append(entries, models.ClassLog{
			Date:     req.Date,
			CourseID: req.CourseID,
			UnitID:   req.UnitID,
			Hours:    hours,
			Type:     sessionType,
			Status:   req.Status,
			Notes:    notes,
		})
	}

	// Rows keep the order the hours were painted in.
	if len(req.HourDistribution) > 0 && req.HourDistribution[0] == models.SessionPractice {
		appendEntry(models.SessionPractice, practiceHours)
		appendEntry(models.SessionTheory, theoryHours)
	} else {
		appendEntry(models.SessionTheory, theoryHours)
		appendEntry(models.SessionPractice, practiceHours)
	}
	return entries, nil
}

// Save validates and persists one journal entry atomically.
func (s *JournalService) Save(ctx context.Context, req dto.JournalEntryRequest) ([]models.ClassLog, error) {
	if ISOWeekday(req.Date) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	entries, err := BuildLogEntries(req)
	if err != nil {
		return nil, err
	}
	if err := s.logs.CreateBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("save journal entry: %w", err)
	}
	return entries, nil
}

// Day resolves the journal view for one date: the logs recorded on it and
// the timetable slots the template plans for its weekday.
func (s *JournalService) Day(ctx context.Context, date string) (dto.JournalDayResponse, error) {
	weekday := ISOWeekday(date)
	if weekday == 0 {
		return dto.JournalDayResponse{}, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	logs, err := s.logs.List(ctx, models.ClassLogFilter{Date: date})
	if err != nil {
		return dto.JournalDayResponse{}, fmt.Errorf("list journal logs: %w", err)
	}
	slots, err := s.schedule.SlotsForDate(ctx, date)
	if err != nil {
		return dto.JournalDayResponse{}, err
	}
	return dto.JournalDayResponse{
		Date:    date,
		Weekday: weekday,
		Logs:    logs,
		Slots:   slots,
	}, nil
}

// ScheduledHours pre-fills the entry duration from the weekly template.
func (s *JournalService) ScheduledHours(ctx context.Context, date, courseID string) (dto.ScheduledHoursResponse, error) {
	hours, err := s.schedule.ScheduledHours(ctx, date, courseID)
	if err != nil {
		return dto.ScheduledHoursResponse{}, err
	}
	return dto.ScheduledHoursResponse{Date: date, CourseID: courseID, Hours: hours}, nil
}

// List returns logs matching the filter in chronological order.
func (s *JournalService) List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error) {
	logs, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list journal logs: %w", err)
	}
	return logs, nil
}

// Delete removes a single journal entry.
func (s *JournalService) Delete(ctx context.Context, id string) error {
	if err := s.logs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete class log %s: %w", id, err)
	}
	return nil
}
