package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/culiplan/culiplan-api/internal/models"
)

// LegendRepository persists the calendar legend.
type LegendRepository struct {
	db *sqlx.DB
}

// NewLegendRepository creates a new legend repository.
func NewLegendRepository(db *sqlx.DB) *LegendRepository {
	return &LegendRepository{db: db}
}

const legendColumns = "id, label, color, non_teaching"

// List returns every legend item in creation order.
func (r *LegendRepository) List(ctx context.Context) ([]models.LegendItem, error) {
	query := fmt.Sprintf("SELECT %s FROM legend_items ORDER BY created_at ASC", legendColumns)
	var items []models.LegendItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list legend items: %w", err)
	}
	return items, nil
}

// FindByID returns one legend item, or nil when it does not exist.
func (r *LegendRepository) FindByID(ctx context.Context, id string) (*models.LegendItem, error) {
	query := fmt.Sprintf("SELECT %s FROM legend_items WHERE id = $1", legendColumns)
	var item models.LegendItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find legend item %s: %w", id, err)
	}
	return &item, nil
}

// Create inserts a legend item, assigning an id when absent.
func (r *LegendRepository) Create(ctx context.Context, item *models.LegendItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	query := "INSERT INTO legend_items (id, label, color, non_teaching, created_at) VALUES ($1, $2, $3, $4, NOW())"
	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Label, item.Color, item.NonTeaching); err != nil {
		return fmt.Errorf("insert legend item: %w", err)
	}
	return nil
}

// Update replaces label, color and the non-teaching flag.
func (r *LegendRepository) Update(ctx context.Context, item *models.LegendItem) error {
	query := "UPDATE legend_items SET label = $2, color = $3, non_teaching = $4 WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, item.ID, item.Label, item.Color, item.NonTeaching)
	if err != nil {
		return fmt.Errorf("update legend item %s: %w", item.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one legend item. Cascading its events is the service's
// responsibility.
func (r *LegendRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM legend_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete legend item %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceAll swaps the whole legend in one transaction (backup import).
func (r *LegendRepository) ReplaceAll(ctx context.Context, items []models.LegendItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace legend: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM legend_items"); err != nil {
		return fmt.Errorf("clear legend items: %w", err)
	}

	query := "INSERT INTO legend_items (id, label, color, non_teaching, created_at) VALUES ($1, $2, $3, $4, NOW())"
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, query, item.ID, item.Label, item.Color, item.NonTeaching); err != nil {
			return fmt.Errorf("restore legend item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace legend: %w", err)
	}
	return nil
}
