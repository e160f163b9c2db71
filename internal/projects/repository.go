package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/db"
	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Repository defines persistence operations for projects and their
// sub-resources.
type Repository interface {
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, p Project) (*Project, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*Project, error)
	Delete(ctx context.Context, id int64) error

	ListTeam(ctx context.Context, projectID int64) ([]TeamMember, error)
	AddTeamMember(ctx context.Context, m TeamMember) error
	RemoveTeamMember(ctx context.Context, projectID int64, userID string) error

	ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error)
	CreateMilestone(ctx context.Context, m Milestone) (*Milestone, error)
	SetMilestoneDone(ctx context.Context, projectID, id int64, done bool) (*Milestone, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const projectColumns = `id, name, summary, repo_url, status, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	err := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Summary, &p.RepoURL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, storeErr("get project", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name`)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	defer rows.Close()
	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Summary, &p.RepoURL, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storeErr("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list projects", err)
	}
	return projects, nil
}

func (r *repository) Create(ctx context.Context, p Project) (*Project, error) {
	var created Project
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, summary, repo_url, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+projectColumns,
		p.Name, p.Summary, p.RepoURL, p.Status).
		Scan(&created.ID, &created.Name, &created.Summary, &created.RepoURL, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, storeErr("create project", err)
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (*Project, error) {
	query := "UPDATE projects SET updated_at = NOW()"
	var args []any
	argPos := 1
	for _, col := range []string{"name", "summary", "repo_url", "status"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argPos, projectColumns)
	args = append(args, id)

	var p Project
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Summary, &p.RepoURL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, storeErr("update project", err)
	}
	return &p, nil
}

// Delete removes a project together with its team rows and milestones
// in one transaction.
func (r *repository) Delete(ctx context.Context, id int64) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM milestones WHERE project_id = $1`, id); err != nil {
			return storeErr("delete milestones", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM team_members WHERE project_id = $1`, id); err != nil {
			return storeErr("delete team members", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return storeErr("delete project", err)
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
	return err
}

func (r *repository) ListTeam(ctx context.Context, projectID int64) ([]TeamMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT project_id, user_id, role, created_at FROM team_members WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, storeErr("list team", err)
	}
	defer rows.Close()
	var team []TeamMember
	for rows.Next() {
		var m TeamMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, storeErr("scan team member", err)
		}
		team = append(team, m)
	}
	return team, rows.Err()
}

func (r *repository) AddTeamMember(ctx context.Context, m TeamMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_members (project_id, user_id, role) VALUES ($1, $2, $3)`,
		m.ProjectID, m.UserID, m.Role)
	if err != nil {
		return storeErr("add team member", err)
	}
	return nil
}

func (r *repository) RemoveTeamMember(ctx context.Context, projectID int64, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return storeErr("remove team member", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, title, due_on, done, created_at FROM milestones WHERE project_id = $1 ORDER BY due_on`, projectID)
	if err != nil {
		return nil, storeErr("list milestones", err)
	}
	defer rows.Close()
	var milestones []Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &m.DueOn, &m.Done, &m.CreatedAt); err != nil {
			return nil, storeErr("scan milestone", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (r *repository) CreateMilestone(ctx context.Context, m Milestone) (*Milestone, error) {
	var created Milestone
	err := r.pool.QueryRow(ctx, `
		INSERT INTO milestones (project_id, title, due_on)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, title, due_on, done, created_at`,
		m.ProjectID, m.Title, m.DueOn).
		Scan(&created.ID, &created.ProjectID, &created.Title, &created.DueOn, &created.Done, &created.CreatedAt)
	if err != nil {
		return nil, storeErr("create milestone", err)
	}
	return &created, nil
}

func (r *repository) SetMilestoneDone(ctx context.Context, projectID, id int64, done bool) (*Milestone, error) {
	var m Milestone
	err := r.pool.QueryRow(ctx, `
		UPDATE milestones SET done = $3 WHERE project_id = $1 AND id = $2
		RETURNING id, project_id, title, due_on, done, created_at`,
		projectID, id, done).
		Scan(&m.ID, &m.ProjectID, &m.Title, &m.DueOn, &m.Done, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, storeErr("set milestone done", err)
	}
	return &m, nil
}

// storeErr wraps a pgx failure, keeping the store's own message (unique
// violations included) attached for diagnostics rather than translating
// it into a domain error.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("projects: %s: %s (%s): %w", op, pgErr.Message, pgErr.Code, httpx.ErrStore)
	}
	return fmt.Errorf("projects: %s: %v: %w", op, err, httpx.ErrStore)
}
