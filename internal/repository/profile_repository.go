package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// ProfileRepository stores the school and teacher identity as single keyed
// JSON documents: there is exactly one of each per deployment.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const (
	profileKeySchool  = "school"
	profileKeyTeacher = "teacher"
)

func (r *ProfileRepository) get(ctx context.Context, key string, dest interface{}) error {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, "SELECT payload FROM profiles WHERE key = $1", key)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("load profile %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode profile %s: %w", key, err)
	}
	return nil
}

func (r *ProfileRepository) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", key, err)
	}
	query := `INSERT INTO profiles (key, payload, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("save profile %s: %w", key, err)
	}
	return nil
}

// SchoolInfo returns the stored school identity, or zero values when none
// was saved yet.
func (r *ProfileRepository) SchoolInfo(ctx context.Context) (models.SchoolInfo, error) {
	var info models.SchoolInfo
	if err := r.get(ctx, profileKeySchool, &info); err != nil && err != sql.ErrNoRows {
		return info, err
	}
	return info, nil
}

// SaveSchoolInfo upserts the school identity.
func (r *ProfileRepository) SaveSchoolInfo(ctx context.Context, info models.SchoolInfo) error {
	return r.save(ctx, profileKeySchool, info)
}

// TeacherInfo returns the stored teacher identity, or zero values when none
// was saved yet.
func (r *ProfileRepository) TeacherInfo(ctx context.Context) (models.TeacherInfo, error) {
	var info models.TeacherInfo
	if err := r.get(ctx, profileKeyTeacher, &info); err != nil && err != sql.ErrNoRows {
		return info, err
	}
	return info, nil
}

// SaveTeacherInfo upserts the teacher identity.
func (r *ProfileRepository) SaveTeacherInfo(ctx context.Context, info models.TeacherInfo) error {
	return r.save(ctx, profileKeyTeacher, info)
}
