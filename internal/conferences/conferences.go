// Package conferences tracks member sign-ups for external conferences.
package conferences

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Registration is a conference registration row.
type Registration struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Conference string    `json:"conference"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all registrations, newest first.
func (r *Repository) List(ctx context.Context) ([]Registration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, conference, created_at FROM conference_registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("conferences: list: %v: %w", err, httpx.ErrStore)
	}
	defer rows.Close()
	var regs []Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Conference, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("conferences: scan: %v: %w", err, httpx.ErrStore)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conferences: list: %v: %w", err, httpx.ErrStore)
	}
	return regs, nil
}

// Create inserts a new registration.
func (r *Repository) Create(ctx context.Context, reg Registration) (*Registration, error) {
	var created Registration
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conference_registrations (name, email, conference)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, conference, created_at`,
		reg.Name, reg.Email, reg.Conference).
		Scan(&created.ID, &created.Name, &created.Email, &created.Conference, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("conferences: create: %v: %w", err, httpx.ErrStore)
	}
	return &created, nil
}
