package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/migrations"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/dailies"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/images"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/quotes"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/refreshtokens"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tags"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tasks"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/users"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/videos"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

var _ RepositoryManager = (*PostgresRepositoryManager)(nil)

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Dailies(db dbx.DBTX) dailies.Repository {
	return dailies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Images(db dbx.DBTX) images.Repository {
	return images.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Videos(db dbx.DBTX) videos.Repository {
	return videos.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tags(db dbx.DBTX) tags.Repository {
	return tags.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Quotes(db dbx.DBTX) quotes.Repository {
	return quotes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// OpenPostgres opens a pgx-backed *sql.DB and checks connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
