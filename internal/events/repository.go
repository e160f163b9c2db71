package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// Repository defines persistence operations for events.
type Repository interface {
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, publishedOnly bool) ([]Event, error)
	Create(ctx context.Context, event Event) (*Event, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*Event, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, published, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.Published, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("events: get: %v: %w", err, httpx.ErrStore)
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, publishedOnly bool) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at`
	if publishedOnly {
		query = `SELECT ` + eventColumns + ` FROM events WHERE published ORDER BY starts_at`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("events: list: %v: %w", err, httpx.ErrStore)
	}
	defer rows.Close()
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.Published, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("events: scan: %v: %w", err, httpx.ErrStore)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events: list: %v: %w", err, httpx.ErrStore)
	}
	return events, nil
}

func (r *repository) Create(ctx context.Context, event Event) (*Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, location, starts_at, ends_at, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt, event.Published))
	if err != nil {
		return nil, fmt.Errorf("events: create: %v: %w", err, httpx.ErrStore)
	}
	return e, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (*Event, error) {
	query := "UPDATE events SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"title", "description", "location", "starts_at", "ends_at", "published"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argPos, eventColumns)
	args = append(args, id)

	e, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("events: update: %v: %w", err, httpx.ErrStore)
	}
	return e, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("events: delete: %v: %w", err, httpx.ErrStore)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
