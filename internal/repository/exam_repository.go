package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// ExamRepository persists assessment sessions.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository creates a new exam repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

type examRow struct {
	ID        string    `db:"id"`
	Date      string    `db:"exam_date"`
	CourseID  string    `db:"course_id"`
	UnitIDs   []byte    `db:"unit_ids"`
	Type      string    `db:"exam_type"`
	Duration  int       `db:"duration"`
	Topics    string    `db:"topics"`
	CreatedAt time.Time `db:"created_at"`
}

const examColumns = "id, to_char(exam_date, 'YYYY-MM-DD') AS exam_date, course_id, unit_ids, exam_type, duration, topics, created_at"

func scanExam(row examRow) (models.Exam, error) {
	exam := models.Exam{
		ID:        row.ID,
		Date:      row.Date,
		CourseID:  row.CourseID,
		Type:      row.Type,
		Duration:  row.Duration,
		Topics:    row.Topics,
		CreatedAt: row.CreatedAt,
	}
	if len(row.UnitIDs) > 0 {
		if err := json.Unmarshal(row.UnitIDs, &exam.UnitIDs); err != nil {
			return exam, fmt.Errorf("decode unit ids for exam %s: %w", row.ID, err)
		}
	}
	return exam, nil
}

// List returns every exam in date order.
func (r *ExamRepository) List(ctx context.Context) ([]models.Exam, error) {
	query := fmt.Sprintf("SELECT %s FROM exams ORDER BY exam_date ASC, created_at ASC", examColumns)
	var rows []examRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	exams := make([]models.Exam, 0, len(rows))
	for _, row := range rows {
		exam, err := scanExam(row)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, nil
}

// Create inserts an exam, assigning an id when absent.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	exam.CreatedAt = time.Now().UTC()

	unitIDs, err := encodeUnitIDs(exam)
	if err != nil {
		return err
	}

	query := `INSERT INTO exams (id, exam_date, course_id, unit_ids, exam_type, duration, topics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		exam.ID, exam.Date, exam.CourseID, unitIDs, exam.Type, exam.Duration, exam.Topics, exam.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}
	return nil
}

// Update replaces every mutable column.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	unitIDs, err := encodeUnitIDs(exam)
	if err != nil {
		return err
	}

	query := `UPDATE exams SET exam_date = $2, course_id = $3, unit_ids = $4, exam_type = $5, duration = $6, topics = $7
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		exam.ID, exam.Date, exam.CourseID, unitIDs, exam.Type, exam.Duration, exam.Topics,
	)
	if err != nil {
		return fmt.Errorf("update exam %s: %w", exam.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one exam.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM exams WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete exam %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByCourse removes every exam of a course (cascade on course delete).
func (r *ExamRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM exams WHERE course_id = $1", courseID); err != nil {
		return fmt.Errorf("delete exams for course %s: %w", courseID, err)
	}
	return nil
}

// ReplaceAll swaps the whole collection in one transaction (backup import).
func (r *ExamRepository) ReplaceAll(ctx context.Context, exams []models.Exam) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace exams: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM exams"); err != nil {
		return fmt.Errorf("clear exams: %w", err)
	}

	query := `INSERT INTO exams (id, exam_date, course_id, unit_ids, exam_type, duration, topics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range exams {
		exam := &exams[i]
		if exam.ID == "" {
			exam.ID = uuid.NewString()
		}
		if exam.CreatedAt.IsZero() {
			exam.CreatedAt = time.Now().UTC()
		}
		unitIDs, err := encodeUnitIDs(exam)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			exam.ID, exam.Date, exam.CourseID, unitIDs, exam.Type, exam.Duration, exam.Topics, exam.CreatedAt,
		); err != nil {
			return fmt.Errorf("restore exam %s: %w", exam.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace exams: %w", err)
	}
	return nil
}

func encodeUnitIDs(exam *models.Exam) ([]byte, error) {
	if exam.UnitIDs == nil {
		exam.UnitIDs = []string{}
	}
	payload, err := json.Marshal(exam.UnitIDs)
	if err != nil {
		return nil, fmt.Errorf("encode unit ids: %w", err)
	}
	return payload, nil
}
