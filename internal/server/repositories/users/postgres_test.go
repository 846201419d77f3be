package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertUser = `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*salt,\s*master_key_verifier\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`

const selectUser = `(?s)^SELECT\s+id,\s*email,\s*master_key_verifier,\s*salt,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertUser).
		WithArgs("alice@example.com", []byte("salt"), []byte("verifier")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", now))

	u := &models.User{Email: "alice@example.com", Salt: []byte("salt"), Verifier: []byte("verifier")}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "42" || got.Email != "alice@example.com" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUser).
		WithArgs("alice@example.com", []byte("s"), []byte("v")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", Salt: []byte("s"), Verifier: []byte("v")})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertUser).
		WithArgs("alice@example.com", []byte("salt"), []byte("verifier")).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", Salt: []byte("salt"), Verifier: []byte("verifier")})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "master_key_verifier", "salt", "created_at"}).
		AddRow("u-1", "alice@example.com", []byte("ver"), []byte("salt"), time.Now())
	mock.ExpectQuery(selectUser).WithArgs("alice@example.com").WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || string(got.Salt) != "salt" || string(got.Verifier) != "ver" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectUser).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectUser).WithArgs("alice@example.com").WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
