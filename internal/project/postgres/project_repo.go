// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package postgres implements the project repository on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/taskboard/taskboard/internal/project"
)

// poolIface is the subset of pgxpool.Pool the repository uses. Satisfied by
// both *pgxpool.Pool and pgxmock.PgxPoolIface.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements project.Repository using PostgreSQL.
type Repository struct {
	pool poolIface
}

// NewRepository creates a new Repository.
func NewRepository(pool poolIface) *Repository {
	return &Repository{pool: pool}
}

// Create stores a new project and fills in the generated ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, p *project.Project) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (description)
		VALUES ($1)
		RETURNING id, created_at
	`, p.Description).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return oops.Code("PROJECT_CREATE_FAILED").
			With("operation", "insert project").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, description, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, id)

	var p project.Project
	err := row.Scan(&p.ID, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROJECT_NOT_FOUND").
			With("id", id).
			Wrap(project.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROJECT_GET_FAILED").
			With("operation", "get project by id").
			With("id", id).
			Wrap(err)
	}
	return &p, nil
}

// Update updates an existing project's description.
func (r *Repository) Update(ctx context.Context, p *project.Project) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE projects SET description = $2, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Description)
	if err != nil {
		return oops.Code("PROJECT_UPDATE_FAILED").
			With("operation", "update project").
			With("id", p.ID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PROJECT_NOT_FOUND").
			With("id", p.ID).
			Wrap(project.ErrNotFound)
	}
	return nil
}

// Delete removes a project. Tasks that referenced it keep a NULL project.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM projects WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("PROJECT_DELETE_FAILED").
			With("operation", "delete project").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PROJECT_NOT_FOUND").
			With("id", id).
			Wrap(project.ErrNotFound)
	}
	return nil
}

// List retrieves all projects ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*project.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, created_at, updated_at
		FROM projects
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").
			With("operation", "list projects").
			Wrap(err)
	}
	return collectProjects(rows)
}

// Search retrieves projects matching the filter, newest first. Each filter
// field appends its own predicate so unset fields cost nothing.
func (r *Repository) Search(ctx context.Context, f project.SearchFilter) ([]*project.Project, error) {
	sql := `
		SELECT id, description, created_at, updated_at
		FROM projects
		WHERE 1=1`
	var args []any

	if f.Text != "" {
		args = append(args, "%"+f.Text+"%")
		sql += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if f.CreatedFrom != nil {
		args = append(args, *f.CreatedFrom)
		sql += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.CreatedTo != nil {
		args = append(args, *f.CreatedTo)
		sql += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	sql += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("PROJECT_SEARCH_FAILED").
			With("operation", "search projects").
			Wrap(err)
	}
	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, oops.Code("PROJECT_SCAN_FAILED").
				With("operation", "scan project row").
				Wrap(err)
		}
		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROJECT_ROWS_ERROR").
			With("operation", "iterate project rows").
			Wrap(err)
	}

	return projects, nil
}

// Compile-time interface check.
var _ project.Repository = (*Repository)(nil)
