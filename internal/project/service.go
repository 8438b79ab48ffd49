// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package project

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides project operations over a Repository.
type Service struct {
	projects Repository
}

// NewService creates a new Service.
func NewService(projects Repository) (*Service, error) {
	if projects == nil {
		return nil, oops.Errorf("projects repository is required")
	}
	return &Service{projects: projects}, nil
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, description string) (*Project, error) {
	trimmed, err := ValidateDescription(description)
	if err != nil {
		return nil, err
	}

	p := &Project{Description: trimmed}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, oops.Code("PROJECT_CREATE_FAILED").
			With("operation", "create project").
			Wrap(err)
	}
	return p, nil
}

// Get retrieves a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("PROJECT_NOT_FOUND").With("id", id).Wrap(err)
		}
		return nil, oops.Code("PROJECT_GET_FAILED").
			With("operation", "get project").
			With("id", id).
			Wrap(err)
	}
	return p, nil
}

// Update validates and applies a new description.
func (s *Service) Update(ctx context.Context, id int64, description string) (*Project, error) {
	trimmed, err := ValidateDescription(description)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Description = trimmed

	if err := s.projects.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("PROJECT_NOT_FOUND").With("id", id).Wrap(err)
		}
		return nil, oops.Code("PROJECT_UPDATE_FAILED").
			With("operation", "update project").
			With("id", id).
			Wrap(err)
	}
	return p, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("PROJECT_NOT_FOUND").With("id", id).Wrap(err)
		}
		return oops.Code("PROJECT_DELETE_FAILED").
			With("operation", "delete project").
			With("id", id).
			Wrap(err)
	}
	return nil
}

// List retrieves all projects.
func (s *Service) List(ctx context.Context) ([]*Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").
			With("operation", "list projects").
			Wrap(err)
	}
	return projects, nil
}

// Search retrieves projects matching the filter, newest first. An empty
// filter behaves like List but with the search ordering.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]*Project, error) {
	projects, err := s.projects.Search(ctx, f)
	if err != nil {
		return nil, oops.Code("PROJECT_SEARCH_FAILED").
			With("operation", "search projects").
			Wrap(err)
	}
	return projects, nil
}
