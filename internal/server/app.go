// Package server wires the journal server: Postgres repositories, services,
// S3 blob storage, the motivation client and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/config"
	gs "github.com/saketh1999/consistency-cal-sub000/internal/server/grpc"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/motivation"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/repomanager"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/services"
)

// tokenPurgeInterval is how often expired refresh tokens are deleted.
const tokenPurgeInterval = time.Hour

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	users  *services.UserService
	server *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewServerLogger()

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	blobs := services.NewBlobService(c)
	users := services.NewUserService(db, rm, c)
	svc := gs.Services{
		Users:      users,
		Journal:    services.NewJournalService(db, rm, blobs, logger.With("module", "journal")),
		Tasks:      services.NewTaskService(db, rm),
		Quotes:     services.NewQuoteService(db, rm),
		Blobs:      blobs,
		Motivation: motivation.NewClient(c.AIEndpoint, c.AIModel, c.AIKey, c.AITimeout),
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		users:  users,
		server: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, c.SecretKey),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) purgeTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.users.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "purged refresh tokens", "count", n)
		}
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
