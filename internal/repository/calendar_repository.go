package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// CalendarRepository persists date-keyed calendar tags.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository creates a new calendar repository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

const calendarColumns = "id, to_char(event_date, 'YYYY-MM-DD') AS event_date, legend_item_id"

// List returns every calendar event in date order.
func (r *CalendarRepository) List(ctx context.Context) ([]models.CalendarEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM calendar_events ORDER BY event_date ASC", calendarColumns)
	var events []models.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

// FindByDateAndLegend returns the event tagging a date with a legend item,
// or nil when the date carries no such tag.
func (r *CalendarRepository) FindByDateAndLegend(ctx context.Context, date, legendItemID string) (*models.CalendarEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM calendar_events WHERE event_date = $1 AND legend_item_id = $2", calendarColumns)
	var event models.CalendarEvent
	if err := r.db.GetContext(ctx, &event, query, date, legendItemID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find calendar event: %w", err)
	}
	return &event, nil
}

// Create inserts an event, assigning an id when absent.
func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	query := "INSERT INTO calendar_events (id, event_date, legend_item_id) VALUES ($1, $2, $3)"
	if _, err := r.db.ExecContext(ctx, query, event.ID, event.Date, event.LegendItemID); err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

// Delete removes one event.
func (r *CalendarRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM calendar_events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete calendar event %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByLegendItem removes every event tagged with a legend item (cascade
// on legend deletion).
func (r *CalendarRepository) DeleteByLegendItem(ctx context.Context, legendItemID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM calendar_events WHERE legend_item_id = $1", legendItemID); err != nil {
		return fmt.Errorf("delete calendar events for legend %s: %w", legendItemID, err)
	}
	return nil
}

// ReplaceAll swaps the whole collection in one transaction (backup import).
func (r *CalendarRepository) ReplaceAll(ctx context.Context, events []models.CalendarEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace calendar events: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM calendar_events"); err != nil {
		return fmt.Errorf("clear calendar events: %w", err)
	}

	query := "INSERT INTO calendar_events (id, event_date, legend_item_id) VALUES ($1, $2, $3)"
	for i := range events {
		event := &events[i]
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, query, event.ID, event.Date, event.LegendItemID); err != nil {
			return fmt.Errorf("restore calendar event %s: %w", event.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace calendar events: %w", err)
	}
	return nil
}
