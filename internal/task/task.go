// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package task provides the task model and service.
package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"
)

// Description length constraints.
const (
	MinDescriptionLength = 1
	MaxDescriptionLength = 255
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Task is a unit of tracked work, optionally attached to a project.
type Task struct {
	ID            int64
	Description   string
	ProjectID     *int64
	ReferenceDate *time.Time
	StartDate     *time.Time
	FinishDate    *time.Time
	Note          string
	Origin        string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Input carries the caller-supplied fields for creating or updating a task.
type Input struct {
	Description   string
	ProjectID     *int64
	ReferenceDate *time.Time
	StartDate     *time.Time
	FinishDate    *time.Time
	Note          string
	Origin        string
}

// Validate normalizes the input and checks its constraints. The returned
// input has the description trimmed.
func (in Input) Validate() (Input, error) {
	trimmed := strings.TrimSpace(in.Description)
	if len(trimmed) < MinDescriptionLength {
		return Input{}, oops.Code("TASK_INVALID_DESCRIPTION").
			Errorf("description cannot be empty")
	}
	if len(trimmed) > MaxDescriptionLength {
		return Input{}, oops.Code("TASK_INVALID_DESCRIPTION").
			With("max", MaxDescriptionLength).
			Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if in.StartDate != nil && in.FinishDate != nil && in.FinishDate.Before(*in.StartDate) {
		return Input{}, oops.Code("TASK_INVALID_DATES").
			Errorf("finish date cannot be before start date")
	}
	in.Description = trimmed
	return in, nil
}

// SearchFilter narrows a task search. Zero-value fields are ignored.
// Text matches descriptions case-insensitively as a substring; StartedFrom
// bounds the start date from below and FinishedTo bounds the finish date
// from above.
type SearchFilter struct {
	Text        string
	ProjectID   *int64
	StartedFrom *time.Time
	FinishedTo  *time.Time
}

// IsZero reports whether the filter has no criteria.
func (f SearchFilter) IsZero() bool {
	return f.Text == "" && f.ProjectID == nil && f.StartedFrom == nil && f.FinishedTo == nil
}

// Repository manages task persistence.
type Repository interface {
	// Create stores a new task and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, t *Task) error

	// GetByID retrieves a task by ID.
	GetByID(ctx context.Context, id int64) (*Task, error)

	// Update updates an existing task.
	Update(ctx context.Context, t *Task) error

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error

	// List retrieves all tasks ordered by ID.
	List(ctx context.Context) ([]*Task, error)

	// ListByProject retrieves tasks attached to a project, ordered by ID.
	ListByProject(ctx context.Context, projectID int64) ([]*Task, error)

	// Search retrieves tasks matching the filter, ordered by ID.
	Search(ctx context.Context, f SearchFilter) ([]*Task, error)
}
