package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Repository defines the single read the authorization check performs.
type Repository interface {
	FindByID(ctx context.Context, id string) (*UserRecord, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches a user record by identity provider id. A missing row
// returns httpx.ErrNotFound; any other failure is a store error.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*UserRecord, error) {
	const query = `SELECT id, email, role, created_at, updated_at FROM users WHERE id = $1`
	var rec UserRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Email, &rec.Role, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find user %s: %v: %w", id, err, httpx.ErrStore)
	}
	return &rec, nil
}

var _ Repository = (*PGRepository)(nil)
