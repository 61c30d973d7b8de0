package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
)

// SQLCategoryRepository implements CategoryRepository on sqlx
type SQLCategoryRepository struct {
	db *sqlx.DB
}

func NewSQLCategoryRepository(db *sqlx.DB) ports.CategoryRepository {
	return &SQLCategoryRepository{db: db}
}

type categoryRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt dbTime `db:"created_at"`
	UpdatedAt dbTime `db:"updated_at"`
}

// List returns all categories ordered by name
func (r *SQLCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`); err != nil {
		return nil, domain.ErrStore("list categories", err)
	}

	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &domain.Category{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt.Time,
			UpdatedAt: row.UpdatedAt.Time,
		})
	}
	return categories, nil
}

// Seed inserts any missing names in one transaction
func (r *SQLCategoryRepository) Seed(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.ErrStore("seed categories", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`)
	now := time.Now().UTC()
	for _, name := range names {
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), name, now, now); err != nil {
			return domain.ErrStore("seed categories", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrStore("seed categories", err)
	}
	return nil
}
