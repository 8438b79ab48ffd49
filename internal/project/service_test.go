// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package project_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/project"
	"github.com/taskboard/taskboard/pkg/errutil"
)

// fakeRepo implements project.Repository with function fields so each test
// can stub exactly what it needs.
type fakeRepo struct {
	create  func(ctx context.Context, p *project.Project) error
	getByID func(ctx context.Context, id int64) (*project.Project, error)
	update  func(ctx context.Context, p *project.Project) error
	delete  func(ctx context.Context, id int64) error
	list    func(ctx context.Context) ([]*project.Project, error)
	search  func(ctx context.Context, f project.SearchFilter) ([]*project.Project, error)
}

func (f *fakeRepo) Create(ctx context.Context, p *project.Project) error {
	return f.create(ctx, p)
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	return f.getByID(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, p *project.Project) error {
	return f.update(ctx, p)
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func (f *fakeRepo) List(ctx context.Context) ([]*project.Project, error) {
	return f.list(ctx)
}

func (f *fakeRepo) Search(ctx context.Context, filter project.SearchFilter) ([]*project.Project, error) {
	return f.search(ctx, filter)
}

func TestNewService_NilRepository(t *testing.T) {
	svc, err := project.NewService(nil)
	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and stores description", func(t *testing.T) {
		repo := &fakeRepo{
			create: func(_ context.Context, p *project.Project) error {
				p.ID = 5
				return nil
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		p, err := svc.Create(ctx, "  Backend rewrite  ")
		require.NoError(t, err)
		assert.Equal(t, int64(5), p.ID)
		assert.Equal(t, "Backend rewrite", p.Description)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		svc, err := project.NewService(&fakeRepo{})
		require.NoError(t, err)

		_, err = svc.Create(ctx, "   ")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_INVALID_DESCRIPTION")
	})

	t.Run("rejects description over 255 chars", func(t *testing.T) {
		svc, err := project.NewService(&fakeRepo{})
		require.NoError(t, err)

		_, err = svc.Create(ctx, strings.Repeat("x", 256))
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_INVALID_DESCRIPTION")
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		want := &project.Project{ID: 5, Description: "Backend rewrite"}
		repo := &fakeRepo{
			getByID: func(_ context.Context, id int64) (*project.Project, error) {
				require.Equal(t, int64(5), id)
				return want, nil
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		p, err := svc.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, want, p)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*project.Project, error) {
				return nil, project.ErrNotFound
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		_, err = svc.Get(ctx, 99)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_NOT_FOUND")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies trimmed description", func(t *testing.T) {
		stored := &project.Project{ID: 5, Description: "old"}
		var updated *project.Project
		repo := &fakeRepo{
			getByID: func(_ context.Context, _ int64) (*project.Project, error) {
				return stored, nil
			},
			update: func(_ context.Context, p *project.Project) error {
				updated = p
				return nil
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		p, err := svc.Update(ctx, 5, " new description ")
		require.NoError(t, err)
		assert.Equal(t, "new description", p.Description)
		require.NotNil(t, updated)
		assert.Equal(t, "new description", updated.Description)
	})

	t.Run("validates before touching the store", func(t *testing.T) {
		svc, err := project.NewService(&fakeRepo{})
		require.NoError(t, err)

		_, err = svc.Update(ctx, 5, "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_INVALID_DESCRIPTION")
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		repo := &fakeRepo{
			delete: func(_ context.Context, id int64) error {
				require.Equal(t, int64(5), id)
				return nil
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, 5))
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			delete: func(_ context.Context, _ int64) error {
				return project.ErrNotFound
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		err = svc.Delete(ctx, 99)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_NOT_FOUND")
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := &fakeRepo{
			list: func(_ context.Context) ([]*project.Project, error) {
				return nil, errors.New("db down")
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		_, err = svc.List(ctx)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_LIST_FAILED")
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the filter through", func(t *testing.T) {
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		want := []*project.Project{{ID: 3, Description: "alpha migration"}}
		var got project.SearchFilter
		repo := &fakeRepo{
			search: func(_ context.Context, f project.SearchFilter) ([]*project.Project, error) {
				got = f
				return want, nil
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		projects, err := svc.Search(ctx, project.SearchFilter{Text: "alpha", CreatedFrom: &from})
		require.NoError(t, err)
		assert.Equal(t, want, projects)
		assert.Equal(t, "alpha", got.Text)
		require.NotNil(t, got.CreatedFrom)
		assert.True(t, from.Equal(*got.CreatedFrom))
		assert.Nil(t, got.CreatedTo)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := &fakeRepo{
			search: func(_ context.Context, _ project.SearchFilter) ([]*project.Project, error) {
				return nil, errors.New("db down")
			},
		}
		svc, err := project.NewService(repo)
		require.NoError(t, err)

		_, err = svc.Search(ctx, project.SearchFilter{Text: "alpha"})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PROJECT_SEARCH_FAILED")
	})
}
