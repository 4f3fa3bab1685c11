package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agriprojet/agriprojet/internal/platform/db"
)

// Schema creates the projects table. Content is kept as one JSONB document.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         uuid PRIMARY KEY,
	user_id    text NOT NULL,
	name       text NOT NULL,
	content    jsonb NOT NULL,
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL,
	CONSTRAINT projects_user_name_key UNIQUE (user_id, name)
);
CREATE INDEX IF NOT EXISTS projects_user_updated_idx ON projects (user_id, updated_at DESC);
`

// Repository persists projects in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository backed by the pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate applies Schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("projects: migrate: %w", err)
	}
	return nil
}

// Create inserts a new project.
func (r *Repository) Create(ctx context.Context, p Project) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("projects: encode content: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO projects (id, user_id, name, content, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Company.Name, content, p.CreatedAt, p.UpdatedAt)
	return mapWriteError(err)
}

// Get loads a project by id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, content, created_at, updated_at FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

// ListByUser returns the user's projects, most recently updated first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, updated_at FROM projects WHERE user_id = $1 ORDER BY updated_at DESC, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update replaces the content of a project owned by p.UserID. The ownership
// check and the write share one transaction.
func (r *Repository) Update(ctx context.Context, p Project) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("projects: encode content: %w", err)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var owner string
		err := tx.QueryRow(ctx, `SELECT user_id FROM projects WHERE id = $1 FOR UPDATE`, p.ID).Scan(&owner)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if owner != p.UserID {
			return ErrForbidden
		}
		_, err = tx.Exec(ctx,
			`UPDATE projects SET name = $2, content = $3, updated_at = $4 WHERE id = $1`,
			p.ID, p.Company.Name, content, p.UpdatedAt)
		return mapWriteError(err)
	})
}

// Delete removes a project owned by userID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIDs returns every project id; the cache warmup walks it.
func (r *Repository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func scanProject(row pgx.Row) (Project, error) {
	var (
		p       Project
		content []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	if err := json.Unmarshal(content, &p.Content); err != nil {
		return Project{}, fmt.Errorf("projects: decode content: %w", err)
	}
	return p, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
