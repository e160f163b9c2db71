package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for users rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUsers returns all users ordered by creation time.
func (r *Repository) ListUsers(ctx context.Context) ([]auth.UserRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, role, created_at, updated_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("members: list users: %v: %w", err, httpx.ErrStore)
	}
	defer rows.Close()
	var users []auth.UserRecord
	for rows.Next() {
		var user auth.UserRecord
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("members: scan user: %v: %w", err, httpx.ErrStore)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("members: list users: %v: %w", err, httpx.ErrStore)
	}
	return users, nil
}

// GetUser fetches one user by id.
func (r *Repository) GetUser(ctx context.Context, id string) (*auth.UserRecord, error) {
	var user auth.UserRecord
	err := r.pool.QueryRow(ctx, `SELECT id, email, role, created_at, updated_at FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("members: get user: %v: %w", err, httpx.ErrStore)
	}
	return &user, nil
}

// SetRole updates the role column for one user and returns the updated row.
func (r *Repository) SetRole(ctx context.Context, id string, role auth.Role) (*auth.UserRecord, error) {
	var user auth.UserRecord
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 RETURNING id, email, role, created_at, updated_at`,
		id, role).
		Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("members: set role: %v: %w", err, httpx.ErrStore)
	}
	return &user, nil
}
