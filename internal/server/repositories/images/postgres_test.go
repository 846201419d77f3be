package images

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*url,\s*storage_key,\s*position,\s*created_at\s+FROM\s+images\s+WHERE\s+entry_id\s*=\s*\$1\s+ORDER\s+BY\s+position`).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "storage_key", "position", "created_at"}).
			AddRow("i1", "A", "k/a", 0, now).
			AddRow("i2", "B", "", 1, now))

	got, err := repo.List(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, journal.Image{ID: "i1", EntryID: "e1", URL: "A", StorageKey: "k/a", Position: 0, CreatedAt: now}, got[0])
	require.Equal(t, "B", got[1].URL)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+images`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "e1")
	require.ErrorContains(t, err, "db error: boom")
}

func TestAdd(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+images\s+\(entry_id,\s*url,\s*storage_key,\s*position\).*ON\s+CONFLICT\s+\(entry_id,\s*url\).*RETURNING\s+id`).
		WithArgs("e1", "A", "k/a", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("i1", time.Now()))

	img := &journal.Image{EntryID: "e1", URL: "A", StorageKey: "k/a", Position: 2}
	require.NoError(t, repo.Add(context.Background(), img))
	require.Equal(t, "i1", img.ID)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `DELETE\s+FROM\s+images\s+WHERE\s+entry_id\s*=\s*\$1\s+AND\s+url\s*=\s*\$2\s+RETURNING\s+storage_key`

	mock.ExpectQuery(q).WithArgs("e1", "A").WillReturnRows(sqlmock.NewRows([]string{"storage_key"}).AddRow("k/a"))
	mock.ExpectQuery(q).WithArgs("e1", "Z").WillReturnError(sql.ErrNoRows)

	key, err := repo.Delete(context.Background(), "e1", "A")
	require.NoError(t, err)
	require.Equal(t, "k/a", key)

	_, err = repo.Delete(context.Background(), "e1", "Z")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
