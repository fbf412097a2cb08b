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

// CourseRepository persists course modules. Units and learning results are
// stored as JSONB documents so every write replaces the owning sequence
// wholesale, matching the editor's array-replace semantics.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseRow struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Cycle           string    `db:"cycle"`
	Grade           string    `db:"grade"`
	WeeklyHours     int       `db:"weekly_hours"`
	AnnualHours     int       `db:"annual_hours"`
	Color           string    `db:"color"`
	Units           []byte    `db:"units"`
	LearningResults []byte    `db:"learning_results"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const courseColumns = "id, name, cycle, grade, weekly_hours, annual_hours, color, units, learning_results, created_at, updated_at"

func (r *CourseRepository) scan(row courseRow) (models.Course, error) {
	course := models.Course{
		ID:          row.ID,
		Name:        row.Name,
		Cycle:       row.Cycle,
		Grade:       row.Grade,
		WeeklyHours: row.WeeklyHours,
		AnnualHours: row.AnnualHours,
		Color:       row.Color,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Units) > 0 {
		if err := json.Unmarshal(row.Units, &course.Units); err != nil {
			return course, fmt.Errorf("decode units for course %s: %w", row.ID, err)
		}
	}
	if len(row.LearningResults) > 0 {
		if err := json.Unmarshal(row.LearningResults, &course.LearningResults); err != nil {
			return course, fmt.Errorf("decode learning results for course %s: %w", row.ID, err)
		}
	}
	return course, nil
}

// List returns every course in creation order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY created_at ASC", courseColumns)
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		course, err := r.scan(row)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// FindByID returns one course or sql.ErrNoRows.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course %s: %w", id, err)
	}
	course, err := r.scan(row)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course, assigning an id when absent.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	units, results, err := encodeNested(course)
	if err != nil {
		return err
	}

	query := `INSERT INTO courses (id, name, cycle, grade, weekly_hours, annual_hours, color, units, learning_results, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Name, course.Cycle, course.Grade, course.WeeklyHours,
		course.AnnualHours, course.Color, units, results, course.CreatedAt, course.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

// Update replaces every mutable column, nested sequences included.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()

	units, results, err := encodeNested(course)
	if err != nil {
		return err
	}

	query := `UPDATE courses SET name = $2, cycle = $3, grade = $4, weekly_hours = $5,
		annual_hours = $6, color = $7, units = $8, learning_results = $9, updated_at = $10
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		course.ID, course.Name, course.Cycle, course.Grade, course.WeeklyHours,
		course.AnnualHours, course.Color, units, results, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update course %s: %w", course.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a course row. Cascading to dependent logs and exams is the
// service's responsibility.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceAll swaps the whole collection in one transaction (backup import).
func (r *CourseRepository) ReplaceAll(ctx context.Context, courses []models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace courses: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO courses (id, name, cycle, grade, weekly_hours, annual_hours, color, units, learning_results, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range courses {
		course := &courses[i]
		if course.ID == "" {
			course.ID = uuid.NewString()
		}
		if course.CreatedAt.IsZero() {
			course.CreatedAt = now
		}
		course.UpdatedAt = now

		units, results, err := encodeNested(course)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			course.ID, course.Name, course.Cycle, course.Grade, course.WeeklyHours,
			course.AnnualHours, course.Color, units, results, course.CreatedAt, course.UpdatedAt,
		); err != nil {
			return fmt.Errorf("restore course %s: %w", course.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace courses: %w", err)
	}
	return nil
}

func encodeNested(course *models.Course) ([]byte, []byte, error) {
	if course.Units == nil {
		course.Units = []models.Unit{}
	}
	if course.LearningResults == nil {
		course.LearningResults = []models.LearningResult{}
	}
	units, err := json.Marshal(course.Units)
	if err != nil {
		return nil, nil, fmt.Errorf("encode units: %w", err)
	}
	results, err := json.Marshal(course.LearningResults)
	if err != nil {
		return nil, nil, fmt.Errorf("encode learning results: %w", err)
	}
	return units, results, nil
}
