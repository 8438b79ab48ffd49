// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/project"
)

func projectColumns() []string {
	return []string{"id", "description", "created_at", "updated_at"}
}

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	created := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("Backend rewrite").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), created))

	repo := NewRepository(mock)
	p := &project.Project{Description: "Backend rewrite"}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows(projectColumns()).
			AddRow(int64(5), "Backend rewrite", time.Now(), (*time.Time)(nil))
		mock.ExpectQuery(`FROM projects\s+WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		repo := NewRepository(mock)
		p, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Backend rewrite", p.Description)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("not found maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`FROM projects\s+WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(projectColumns()))

		repo := NewRepository(mock)
		_, err = repo.GetByID(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, project.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE projects SET description = \$2`).
			WithArgs(int64(5), "new description").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewRepository(mock)
		p := &project.Project{ID: 5, Description: "new description"}
		require.NoError(t, repo.Update(context.Background(), p))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`UPDATE projects SET description = \$2`).
			WithArgs(int64(99), "new description").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewRepository(mock)
		p := &project.Project{ID: 99, Description: "new description"}
		err = repo.Update(context.Background(), p)
		require.Error(t, err)
		assert.ErrorIs(t, err, project.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestRepository_List(t *testing.T) {
	t.Run("returns projects", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		now := time.Now().UTC()
		rows := pgxmock.NewRows(projectColumns()).
			AddRow(int64(1), "Backend rewrite", now, (*time.Time)(nil)).
			AddRow(int64(2), "Mobile app", now, (*time.Time)(nil))
		mock.ExpectQuery(`FROM projects\s+ORDER BY id`).
			WillReturnRows(rows)

		repo := NewRepository(mock)
		projects, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Mobile app", projects[1].Description)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`FROM projects\s+ORDER BY id`).
			WillReturnError(errors.New("connection refused"))

		repo := NewRepository(mock)
		_, err = repo.List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestRepository_Search(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		now := time.Now().UTC()
		rows := pgxmock.NewRows(projectColumns()).
			AddRow(int64(3), "alpha migration", now, (*time.Time)(nil))
		mock.ExpectQuery(`FROM projects\s+WHERE 1=1 AND description ILIKE \$1 ORDER BY created_at DESC`).
			WithArgs("%alpha%").
			WillReturnRows(rows)

		repo := NewRepository(mock)
		projects, err := repo.Search(context.Background(), project.SearchFilter{Text: "alpha"})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "alpha migration", projects[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("text and date range", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`WHERE 1=1 AND description ILIKE \$1 AND created_at >= \$2 AND created_at <= \$3 ORDER BY created_at DESC`).
			WithArgs("%alpha%", from, to).
			WillReturnRows(pgxmock.NewRows(projectColumns()))

		repo := NewRepository(mock)
		projects, err := repo.Search(context.Background(), project.SearchFilter{
			Text:        "alpha",
			CreatedFrom: &from,
			CreatedTo:   &to,
		})
		require.NoError(t, err)
		assert.Empty(t, projects)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`WHERE 1=1 AND description ILIKE \$1`).
			WithArgs("%alpha%").
			WillReturnError(errors.New("connection refused"))

		repo := NewRepository(mock)
		_, err = repo.Search(context.Background(), project.SearchFilter{Text: "alpha"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
