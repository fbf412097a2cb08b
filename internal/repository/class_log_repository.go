package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// ClassLogRepository persists daily journal entries.
type ClassLogRepository struct {
	db *sqlx.DB
}

// NewClassLogRepository creates a new class log repository.
func NewClassLogRepository(db *sqlx.DB) *ClassLogRepository {
	return &ClassLogRepository{db: db}
}

// Dates travel as YYYY-MM-DD strings end to end; the journal matches on the
// exact day, never on timestamps.
const classLogColumns = "id, to_char(log_date, 'YYYY-MM-DD') AS log_date, course_id, unit_id, hours, session_type, status, notes, created_at"

// List returns logs matching the filter in ascending date order, insertion
// order within a day.
func (r *ClassLogRepository) List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error) {
	base := "FROM class_logs WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("log_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.UnitID != "" {
		conditions = append(conditions, fmt.Sprintf("unit_id = $%d", len(args)+1))
		args = append(args, filter.UnitID)
	}
	if filter.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("log_date >= $%d", len(args)+1))
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("log_date <= $%d", len(args)+1))
		args = append(args, filter.ToDate)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY log_date ASC, created_at ASC", classLogColumns, base)
	var logs []models.ClassLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("list class logs: %w", err)
	}
	return logs, nil
}

// CreateBatch inserts the rows of one journal save atomically.
func (r *ClassLogRepository) CreateBatch(ctx context.Context, logs []models.ClassLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert class logs: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `INSERT INTO class_logs (id, log_date, course_id, unit_id, hours, session_type, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range logs {
		log := &logs[i]
		if log.ID == "" {
			log.ID = uuid.NewString()
		}
		if log.CreatedAt.IsZero() {
			log.CreatedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, query,
			log.ID, log.Date, log.CourseID, log.UnitID, log.Hours, log.Type, log.Status, log.Notes, log.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert class log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert class logs: %w", err)
	}
	return nil
}

// Delete removes one journal entry. Journal deletions need no confirmation.
func (r *ClassLogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM class_logs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete class log %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByCourse removes every log of a course (cascade on course delete).
func (r *ClassLogRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM class_logs WHERE course_id = $1", courseID); err != nil {
		return fmt.Errorf("delete class logs for course %s: %w", courseID, err)
	}
	return nil
}

// ReplaceAll swaps the whole journal in one transaction (backup import).
func (r *ClassLogRepository) ReplaceAll(ctx context.Context, logs []models.ClassLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace class logs: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM class_logs"); err != nil {
		return fmt.Errorf("clear class logs: %w", err)
	}

	query := `INSERT INTO class_logs (id, log_date, course_id, unit_id, hours, session_type, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range logs {
		log := &logs[i]
		if log.ID == "" {
			log.ID = uuid.NewString()
		}
		if log.CreatedAt.IsZero() {
			log.CreatedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, query,
			log.ID, log.Date, log.CourseID, log.UnitID, log.Hours, log.Type, log.Status, log.Notes, log.CreatedAt,
		); err != nil {
			return fmt.Errorf("restore class log %s: %w", log.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace class logs: %w", err)
	}
	return nil
}
