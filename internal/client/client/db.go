package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/migrations"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/repositories/localstore"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

// Repositories bundles the client's local tables.
type Repositories struct {
	Metadata metadata.Repository
	Local    localstore.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Local:    localstore.NewSQLiteRepository(db),
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and brings
// its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
