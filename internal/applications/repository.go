package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Repository defines persistence operations for both application kinds.
type Repository interface {
	CreateMembership(ctx context.Context, a MembershipApplication) (*MembershipApplication, error)
	ListMembership(ctx context.Context) ([]MembershipApplication, error)
	UpdateMembershipStatus(ctx context.Context, id int64, status string) (*MembershipApplication, error)

	CreateProject(ctx context.Context, a ProjectApplication) (*ProjectApplication, error)
	ListProject(ctx context.Context) ([]ProjectApplication, error)
	UpdateProjectStatus(ctx context.Context, id int64, status string) (*ProjectApplication, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const membershipColumns = `id, reference, name, email, major, year, motivation, status, created_at, updated_at`

const projectColumns = `id, reference, project_id, name, email, skills, status, created_at, updated_at`

func (r *repository) CreateMembership(ctx context.Context, a MembershipApplication) (*MembershipApplication, error) {
	var created MembershipApplication
	err := r.pool.QueryRow(ctx, `
		INSERT INTO membership_applications (reference, name, email, major, year, motivation, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+membershipColumns,
		a.Reference, a.Name, a.Email, a.Major, a.Year, a.Motivation, a.Status).
		Scan(&created.ID, &created.Reference, &created.Name, &created.Email, &created.Major,
			&created.Year, &created.Motivation, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, storeErr("create membership application", err)
	}
	return &created, nil
}

func (r *repository) ListMembership(ctx context.Context) ([]MembershipApplication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+membershipColumns+` FROM membership_applications ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("list membership applications", err)
	}
	defer rows.Close()
	var apps []MembershipApplication
	for rows.Next() {
		var a MembershipApplication
		if err := rows.Scan(&a.ID, &a.Reference, &a.Name, &a.Email, &a.Major,
			&a.Year, &a.Motivation, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, storeErr("scan membership application", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list membership applications", err)
	}
	return apps, nil
}

func (r *repository) UpdateMembershipStatus(ctx context.Context, id int64, status string) (*MembershipApplication, error) {
	var a MembershipApplication
	err := r.pool.QueryRow(ctx, `
		UPDATE membership_applications SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+membershipColumns,
		id, status).
		Scan(&a.ID, &a.Reference, &a.Name, &a.Email, &a.Major,
			&a.Year, &a.Motivation, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, storeErr("update membership status", err)
	}
	return &a, nil
}

func (r *repository) CreateProject(ctx context.Context, a ProjectApplication) (*ProjectApplication, error) {
	var created ProjectApplication
	err := r.pool.QueryRow(ctx, `
		INSERT INTO project_applications (reference, project_id, name, email, skills, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		a.Reference, a.ProjectID, a.Name, a.Email, a.Skills, a.Status).
		Scan(&created.ID, &created.Reference, &created.ProjectID, &created.Name, &created.Email,
			&created.Skills, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, storeErr("create project application", err)
	}
	return &created, nil
}

func (r *repository) ListProject(ctx context.Context) ([]ProjectApplication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM project_applications ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("list project applications", err)
	}
	defer rows.Close()
	var apps []ProjectApplication
	for rows.Next() {
		var a ProjectApplication
		if err := rows.Scan(&a.ID, &a.Reference, &a.ProjectID, &a.Name, &a.Email,
			&a.Skills, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, storeErr("scan project application", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list project applications", err)
	}
	return apps, nil
}

func (r *repository) UpdateProjectStatus(ctx context.Context, id int64, status string) (*ProjectApplication, error) {
	var a ProjectApplication
	err := r.pool.QueryRow(ctx, `
		UPDATE project_applications SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+projectColumns,
		id, status).
		Scan(&a.ID, &a.Reference, &a.ProjectID, &a.Name, &a.Email,
			&a.Skills, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, storeErr("update project application status", err)
	}
	return &a, nil
}

// storeErr keeps the store's own error payload (constraint violations
// included) attached for diagnostics instead of mapping it to a domain
// error.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("applications: %s: %s (%s): %w", op, pgErr.Message, pgErr.Code, httpx.ErrStore)
	}
	return fmt.Errorf("applications: %s: %v: %w", op, err, httpx.ErrStore)
}
