package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// ScheduleRepository persists the weekly template. The template is small and
// always edited as a whole, so it only supports list and wholesale replace.
// Position keeps the insertion order the hour labels depend on.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns the template in stored order.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.ScheduleSlot, error) {
	query := `SELECT id, position, day_of_week, start_time, end_time, course_id, default_hours, label
		FROM schedule_slots ORDER BY position ASC`
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// ReplaceAll swaps the whole template in one transaction, persisting slot
// order through the position column.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, slots []models.ScheduleSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedule: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_slots"); err != nil {
		return fmt.Errorf("clear schedule slots: %w", err)
	}

	query := `INSERT INTO schedule_slots (id, position, day_of_week, start_time, end_time, course_id, default_hours, label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		slot.Position = i
		if _, err := tx.ExecContext(ctx, query,
			slot.ID, slot.Position, slot.DayOfWeek, slot.StartTime, slot.EndTime,
			slot.CourseID, slot.DefaultHours, slot.Label,
		); err != nil {
			return fmt.Errorf("insert schedule slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedule: %w", err)
	}
	return nil
}
