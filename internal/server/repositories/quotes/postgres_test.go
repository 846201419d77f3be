package quotes

import (
	"context"
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

	mock.ExpectQuery(`(?s)FROM\s+quotes\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date_added\s+DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "author", "image_url", "date_added", "created_at"}).
			AddRow("q1", "Keep going", "Anon", "", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), now))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []journal.Quote{{ID: "q1", Text: "Keep going", Author: "Anon", DateAdded: "2024-05-01", CreatedAt: now}}, got)
}

func TestCreate_DefaultsDate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+quotes.*COALESCE\(\$5::date,\s*CURRENT_DATE\)`).
		WithArgs("u1", "Keep going", "", "", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date_added", "created_at"}).
			AddRow("q1", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), time.Now()))

	q := &journal.Quote{Text: "Keep going"}
	require.NoError(t, repo.Create(context.Background(), "u1", q))
	require.Equal(t, "q1", q.ID)
	require.Equal(t, journal.Date("2024-05-02"), q.DateAdded)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT\s+INTO\s+quotes`).WillReturnError(errors.New("boom"))

	require.ErrorContains(t, repo.Create(context.Background(), "u1", &journal.Quote{Text: "x", DateAdded: "2024-05-01"}), "db error: boom")
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `DELETE\s+FROM\s+quotes\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2`

	mock.ExpectExec(q).WithArgs("u1", "q1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u1", "q9").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "u1", "q1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "u1", "q9"), common.ErrorNotFound)
}
