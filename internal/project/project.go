// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package project provides the project model and service.
package project

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

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// Project is a grouping bucket for tasks.
type Project struct {
	ID          int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ValidateDescription checks the trimmed description length.
func ValidateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < MinDescriptionLength {
		return "", oops.Code("PROJECT_INVALID_DESCRIPTION").
			Errorf("description cannot be empty")
	}
	if len(trimmed) > MaxDescriptionLength {
		return "", oops.Code("PROJECT_INVALID_DESCRIPTION").
			With("max", MaxDescriptionLength).
			Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return trimmed, nil
}

// SearchFilter narrows a project search. Zero-value fields are ignored.
// Text matches descriptions case-insensitively as a substring; the date
// bounds apply to the creation timestamp.
type SearchFilter struct {
	Text        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// IsZero reports whether the filter has no criteria.
func (f SearchFilter) IsZero() bool {
	return f.Text == "" && f.CreatedFrom == nil && f.CreatedTo == nil
}

// Repository manages project persistence.
type Repository interface {
	// Create stores a new project and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, p *Project) error

	// GetByID retrieves a project by ID.
	GetByID(ctx context.Context, id int64) (*Project, error)

	// Update updates an existing project.
	Update(ctx context.Context, p *Project) error

	// Delete removes a project.
	Delete(ctx context.Context, id int64) error

	// List retrieves all projects ordered by ID.
	List(ctx context.Context) ([]*Project, error)

	// Search retrieves projects matching the filter, newest first.
	Search(ctx context.Context, f SearchFilter) ([]*Project, error)
}
