// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package postgres implements the task repository on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/taskboard/taskboard/internal/task"
)

// poolIface is the subset of pgxpool.Pool the repository uses. Satisfied by
// both *pgxpool.Pool and pgxmock.PgxPoolIface.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const taskColumns = "id, description, project_id, reference_date, start_date, finish_date, note, origin, created_at, updated_at"

// Repository implements task.Repository using PostgreSQL.
type Repository struct {
	pool poolIface
}

// NewRepository creates a new Repository.
func NewRepository(pool poolIface) *Repository {
	return &Repository{pool: pool}
}

// Create stores a new task and fills in the generated ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, t *task.Task) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (description, project_id, reference_date, start_date, finish_date, note, origin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		t.Description,
		t.ProjectID,
		t.ReferenceDate,
		t.StartDate,
		t.FinishDate,
		t.Note,
		t.Origin,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return oops.Code("TASK_CREATE_FAILED").
			With("operation", "insert task").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TASK_NOT_FOUND").
			With("id", id).
			Wrap(task.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TASK_GET_FAILED").
			With("operation", "get task by id").
			With("id", id).
			Wrap(err)
	}
	return t, nil
}

// Update updates an existing task.
func (r *Repository) Update(ctx context.Context, t *task.Task) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET description = $2, project_id = $3, reference_date = $4, start_date = $5,
		    finish_date = $6, note = $7, origin = $8, updated_at = now()
		WHERE id = $1
	`,
		t.ID,
		t.Description,
		t.ProjectID,
		t.ReferenceDate,
		t.StartDate,
		t.FinishDate,
		t.Note,
		t.Origin,
	)
	if err != nil {
		return oops.Code("TASK_UPDATE_FAILED").
			With("operation", "update task").
			With("id", t.ID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", t.ID).
			Wrap(task.ErrNotFound)
	}
	return nil
}

// Delete removes a task.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("TASK_DELETE_FAILED").
			With("operation", "delete task").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TASK_NOT_FOUND").
			With("id", id).
			Wrap(task.ErrNotFound)
	}
	return nil
}

// List retrieves all tasks ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*task.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("TASK_LIST_FAILED").
			With("operation", "list tasks").
			Wrap(err)
	}
	return collectTasks(rows)
}

// ListByProject retrieves tasks attached to a project, ordered by ID.
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]*task.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = $1
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, oops.Code("TASK_LIST_BY_PROJECT_FAILED").
			With("operation", "list tasks by project").
			With("project_id", projectID).
			Wrap(err)
	}
	return collectTasks(rows)
}

// Search retrieves tasks matching the filter, ordered by ID. Each filter
// field appends its own predicate so unset fields cost nothing.
func (r *Repository) Search(ctx context.Context, f task.SearchFilter) ([]*task.Task, error) {
	sql := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE 1=1`
	var args []any

	if f.Text != "" {
		args = append(args, "%"+f.Text+"%")
		sql += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		sql += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if f.StartedFrom != nil {
		args = append(args, *f.StartedFrom)
		sql += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if f.FinishedTo != nil {
		args = append(args, *f.FinishedTo)
		sql += fmt.Sprintf(" AND finish_date <= $%d", len(args))
	}
	sql += " ORDER BY id"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("TASK_SEARCH_FAILED").
			With("operation", "search tasks").
			Wrap(err)
	}
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]*task.Task, error) {
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, oops.Code("TASK_SCAN_FAILED").
				With("operation", "scan task row").
				Wrap(err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("TASK_ROWS_ERROR").
			With("operation", "iterate task rows").
			Wrap(err)
	}

	return tasks, nil
}

// scanTask scans a single row into a Task.
// Callers are responsible for handling pgx.ErrNoRows.
func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Description, &t.ProjectID, &t.ReferenceDate, &t.StartDate, &t.FinishDate, &t.Note, &t.Origin, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("TASK_SCAN_FAILED").
			With("operation", "scan task").
			Wrap(err)
	}
	return &t, nil
}

// scanTaskRow scans a row from a rows iterator into a Task.
func scanTaskRow(rows pgx.Rows) (*task.Task, error) {
	var t task.Task
	err := rows.Scan(&t.ID, &t.Description, &t.ProjectID, &t.ReferenceDate, &t.StartDate, &t.FinishDate, &t.Note, &t.Origin, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err //nolint:wrapcheck // collectTasks wraps with context
	}
	return &t, nil
}

// Compile-time interface check.
var _ task.Repository = (*Repository)(nil)
