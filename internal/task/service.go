// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package task

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides task operations over a Repository.
type Service struct {
	tasks Repository
}

// NewService creates a new Service.
func NewService(tasks Repository) (*Service, error) {
	if tasks == nil {
		return nil, oops.Errorf("tasks repository is required")
	}
	return &Service{tasks: tasks}, nil
}

// Create validates and stores a new task.
func (s *Service) Create(ctx context.Context, in Input) (*Task, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}

	t := &Task{
		Description:   in.Description,
		ProjectID:     in.ProjectID,
		ReferenceDate: in.ReferenceDate,
		StartDate:     in.StartDate,
		FinishDate:    in.FinishDate,
		Note:          in.Note,
		Origin:        in.Origin,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, oops.Code("TASK_CREATE_FAILED").
			With("operation", "create task").
			Wrap(err)
	}
	return t, nil
}

// Get retrieves a task by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("TASK_NOT_FOUND").With("id", id).Wrap(err)
		}
		return nil, oops.Code("TASK_GET_FAILED").
			With("operation", "get task").
			With("id", id).
			Wrap(err)
	}
	return t, nil
}

// Update validates and applies new field values to an existing task.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*Task, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Description = in.Description
	t.ProjectID = in.ProjectID
	t.ReferenceDate = in.ReferenceDate
	t.StartDate = in.StartDate
	t.FinishDate = in.FinishDate
	t.Note = in.Note
	t.Origin = in.Origin

	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("TASK_NOT_FOUND").With("id", id).Wrap(err)
		}
		return nil, oops.Code("TASK_UPDATE_FAILED").
			With("operation", "update task").
			With("id", id).
			Wrap(err)
	}
	return t, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("TASK_NOT_FOUND").With("id", id).Wrap(err)
		}
		return oops.Code("TASK_DELETE_FAILED").
			With("operation", "delete task").
			With("id", id).
			Wrap(err)
	}
	return nil
}

// List retrieves all tasks, or only those attached to projectID when it is
// non-nil.
func (s *Service) List(ctx context.Context, projectID *int64) ([]*Task, error) {
	var (
		tasks []*Task
		err   error
	)
	if projectID != nil {
		tasks, err = s.tasks.ListByProject(ctx, *projectID)
	} else {
		tasks, err = s.tasks.List(ctx)
	}
	if err != nil {
		return nil, oops.Code("TASK_LIST_FAILED").
			With("operation", "list tasks").
			Wrap(err)
	}
	return tasks, nil
}

// Search retrieves tasks matching the filter, ordered by ID.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]*Task, error) {
	tasks, err := s.tasks.Search(ctx, f)
	if err != nil {
		return nil, oops.Code("TASK_SEARCH_FAILED").
			With("operation", "search tasks").
			Wrap(err)
	}
	return tasks, nil
}
