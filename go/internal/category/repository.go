package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
)

// ErrNotFound is returned when a category does not exist.
var ErrNotFound = errors.New("category not found")

// Repository implements category data access on Postgres.
type Repository struct {
	db sqlutil.DBTX
}

func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx pgx.Tx) *Repository {
	return &Repository{db: tx}
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2) RETURNING id, name, created_at`,
		uuid.New(), name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// GetCategory retrieves a category by ID.
func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// ListCategories returns every category in stable (created_at, id) order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a category. Questions referencing it become
// dangling on purpose; the aggregator resolves them to "Unknown".
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
