// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package task_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/task"
	"github.com/taskboard/taskboard/pkg/errutil"
)

// fakeRepo implements task.Repository with function fields so each test can
// stub exactly what it needs.
type fakeRepo struct {
	create        func(ctx context.Context, t *task.Task) error
	getByID       func(ctx context.Context, id int64) (*task.Task, error)
	update        func(ctx context.Context, t *task.Task) error
	delete        func(ctx context.Context, id int64) error
	list          func(ctx context.Context) ([]*task.Task, error)
	listByProject func(ctx context.Context, projectID int64) ([]*task.Task, error)
	search        func(ctx context.Context, f task.SearchFilter) ([]*task.Task, error)
}

func (f *fakeRepo) Create(ctx context.Context, t *task.Task) error { return f.create(ctx, t) }

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	return f.getByID(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, t *task.Task) error { return f.update(ctx, t) }

func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return f.delete(ctx, id) }

func (f *fakeRepo) List(ctx context.Context) ([]*task.Task, error) { return f.list(ctx) }

func (f *fakeRepo) ListByProject(ctx context.Context, projectID int64) ([]*task.Task, error) {
	return f.listByProject(ctx, projectID)
}

func (f *fakeRepo) Search(ctx context.Context, filter task.SearchFilter) ([]*task.Task, error) {
	return f.search(ctx, filter)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestInput_Validate(t *testing.T) {
	t.Run("trims description", func(t *testing.T) {
		in, err := task.Input{Description: "  write docs  "}.Validate()
		require.NoError(t, err)
		assert.Equal(t, "write docs", in.Description)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := task.Input{Description: "   "}.Validate()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_INVALID_DESCRIPTION")
	})

	t.Run("rejects description over 255 chars", func(t *testing.T) {
		_, err := task.Input{Description: strings.Repeat("x", 256)}.Validate()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_INVALID_DESCRIPTION")
	})

	t.Run("rejects finish before start", func(t *testing.T) {
		_, err := task.Input{
			Description: "write docs",
			StartDate:   datePtr(2026, 3, 10),
			FinishDate:  datePtr(2026, 3, 1),
		}.Validate()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_INVALID_DATES")
	})

	t.Run("same-day start and finish is fine", func(t *testing.T) {
		_, err := task.Input{
			Description: "write docs",
			StartDate:   datePtr(2026, 3, 10),
			FinishDate:  datePtr(2026, 3, 10),
		}.Validate()
		require.NoError(t, err)
	})

	t.Run("open-ended dates are fine", func(t *testing.T) {
		_, err := task.Input{
			Description: "write docs",
			StartDate:   datePtr(2026, 3, 10),
		}.Validate()
		require.NoError(t, err)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores validated task", func(t *testing.T) {
		repo := &fakeRepo{
			create: func(_ context.Context, tk *task.Task) error {
				tk.ID = 8
				return nil
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		projectID := int64(5)
		got, err := svc.Create(ctx, task.Input{
			Description: " write docs ",
			ProjectID:   &projectID,
			Origin:      "import",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(8), got.ID)
		assert.Equal(t, "write docs", got.Description)
		require.NotNil(t, got.ProjectID)
		assert.Equal(t, int64(5), *got.ProjectID)
	})

	t.Run("validation failure never reaches the store", func(t *testing.T) {
		svc, err := task.NewService(&fakeRepo{})
		require.NoError(t, err)

		_, err = svc.Create(ctx, task.Input{Description: ""})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_INVALID_DESCRIPTION")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields", func(t *testing.T) {
		stored := &task.Task{ID: 8, Description: "old", Note: "old note"}
		var updated *task.Task
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*task.Task, error) { return stored, nil },
			update: func(_ context.Context, tk *task.Task) error {
				updated = tk
				return nil
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		got, err := svc.Update(ctx, 8, task.Input{Description: "new", Note: "new note"})
		require.NoError(t, err)
		assert.Equal(t, "new", got.Description)
		assert.Equal(t, "new note", got.Note)
		require.NotNil(t, updated)
		assert.Equal(t, "new", updated.Description)
	})

	t.Run("unknown task reports not found", func(t *testing.T) {
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*task.Task, error) {
				return nil, task.ErrNotFound
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		_, err = svc.Update(ctx, 99, task.Input{Description: "new"})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_NOT_FOUND")
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepo{
		delete: func(_ context.Context, _ int64) error { return task.ErrNotFound },
	}
	svc, err := task.NewService(repo)
	require.NoError(t, err)

	err = svc.Delete(ctx, 99)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "TASK_NOT_FOUND")
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all tasks", func(t *testing.T) {
		repo := &fakeRepo{
			list: func(_ context.Context) ([]*task.Task, error) {
				return []*task.Task{{ID: 1}, {ID: 2}}, nil
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		tasks, err := svc.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("filtered by project", func(t *testing.T) {
		repo := &fakeRepo{
			listByProject: func(_ context.Context, projectID int64) ([]*task.Task, error) {
				require.Equal(t, int64(5), projectID)
				return []*task.Task{{ID: 1}}, nil
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		projectID := int64(5)
		tasks, err := svc.List(ctx, &projectID)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the filter through", func(t *testing.T) {
		projectID := int64(7)
		want := []*task.Task{{ID: 2, Description: "report draft"}}
		var got task.SearchFilter
		repo := &fakeRepo{
			search: func(_ context.Context, f task.SearchFilter) ([]*task.Task, error) {
				got = f
				return want, nil
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		tasks, err := svc.Search(ctx, task.SearchFilter{
			Text:        "report",
			ProjectID:   &projectID,
			StartedFrom: datePtr(2026, 8, 1),
			FinishedTo:  datePtr(2026, 8, 31),
		})
		require.NoError(t, err)
		assert.Equal(t, want, tasks)
		assert.Equal(t, "report", got.Text)
		require.NotNil(t, got.ProjectID)
		assert.Equal(t, int64(7), *got.ProjectID)
		require.NotNil(t, got.StartedFrom)
		require.NotNil(t, got.FinishedTo)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := &fakeRepo{
			search: func(_ context.Context, _ task.SearchFilter) ([]*task.Task, error) {
				return nil, assert.AnError
			},
		}
		svc, err := task.NewService(repo)
		require.NoError(t, err)

		_, err = svc.Search(ctx, task.SearchFilter{Text: "report"})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "TASK_SEARCH_FAILED")
	})
}
