// Package resources manages the club's shared learning resources.
package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Resource is a curated link row.
type Resource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all resources ordered by title.
func (r *Repository) List(ctx context.Context) ([]Resource, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, url, kind, created_at, updated_at FROM resources ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("resources: list: %v: %w", err, httpx.ErrStore)
	}
	defer rows.Close()
	var resources []Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.URL, &res.Kind, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("resources: scan: %v: %w", err, httpx.ErrStore)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resources: list: %v: %w", err, httpx.ErrStore)
	}
	return resources, nil
}

// Create inserts a new resource.
func (r *Repository) Create(ctx context.Context, res Resource) (*Resource, error) {
	var created Resource
	err := r.pool.QueryRow(ctx, `
		INSERT INTO resources (title, url, kind)
		VALUES ($1, $2, $3)
		RETURNING id, title, url, kind, created_at, updated_at`,
		res.Title, res.URL, res.Kind).
		Scan(&created.ID, &created.Title, &created.URL, &created.Kind, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("resources: create: %v: %w", err, httpx.ErrStore)
	}
	return &created, nil
}

// Update replaces the mutable columns of one resource.
func (r *Repository) Update(ctx context.Context, id int64, res Resource) (*Resource, error) {
	var updated Resource
	err := r.pool.QueryRow(ctx, `
		UPDATE resources SET title = $2, url = $3, kind = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, url, kind, created_at, updated_at`,
		id, res.Title, res.URL, res.Kind).
		Scan(&updated.ID, &updated.Title, &updated.URL, &updated.Kind, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("resources: update: %v: %w", err, httpx.ErrStore)
	}
	return &updated, nil
}

// Delete removes a resource by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resources: delete: %v: %w", err, httpx.ErrStore)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
