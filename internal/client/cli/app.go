package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/calendar"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/config"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/keyring"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/notify"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/services"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/session"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/netx"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeLocal   Mode = "local"
)

// AuthService is the part of services.AuthService the CLI drives.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (services.Session, error)
	Register(ctx context.Context, email string, password []byte) (services.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Current() (services.Session, bool)
	Authenticated() bool
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config      *config.Config
	authService AuthService
	session     *session.Session
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	db          *sql.DB

	mu   sync.Mutex
	mode Mode
}

// NewApp opens local storage, connects the API client and builds the
// journal session. Nothing talks to the server until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	repos := client.NewRepositories(db)

	api, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cal, err := calendar.NewClient(c.CalendarBaseURL, c.CalendarID, c.CalendarToken, c.RequestTimeout)
	if err != nil {
		_ = api.Close()
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(api, db, keyring.New(keyring.Service), logger)
	out := os.Stdout

	s := session.New(session.Config{
		PushDebounce:    c.PushDebounce,
		MaxUploadBytes:  c.MaxUploadBytes,
		LocalQuotaBytes: c.LocalQuotaBytes,
		MediaDir:        c.MediaDir,
		LoadTimeout:     c.RequestTimeout * 3,
	}, session.Deps{
		API:      api,
		Auth:     as,
		Local:    repos.Local,
		Calendar: cal,
		Uploader: netx.NewUploader(&http.Client{Timeout: c.RequestTimeout * 6}),
		Notifier: notify.NewConsole(out),
		Logger:   logger,
	})

	return &App{
		config:      c,
		authService: as,
		session:     s,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         out,
		db:          db,
		mode:        ModeLocal,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(context.Background(), "mode changed", "mode", mode)
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run restores the previous session, opens today and runs the REPL until
// the user exits. Pending edits are sent before returning.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		_ = a.authService.Close()
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	a.session.Start(ctx)
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
		defer cancel()
		if err := a.session.Close(cctx); err != nil {
			a.logger.Error(cctx, "closing session", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the consistency calendar (type 'help' for commands)")

	if ok, err := a.authService.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	} else if ok {
		a.refreshMode(ctx)
	}

	if err := a.Day(ctx, nil); err != nil {
		a.logger.Warn(ctx, "opening today", "error", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if cur, ok := a.authService.Current(); ok {
		s = cur.Email + " "
	}
	s += string(a.Mode())
	if n := a.session.Pending(); n > 0 {
		s += fmt.Sprintf(" *%d", n)
	}
	return fmt.Sprintf("(%s)", s)
}

// refreshMode pings the server once and derives the mode from the result
// and the session.
func (a *App) refreshMode(ctx context.Context) {
	if !a.authService.Authenticated() {
		a.setMode(ModeLocal)
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pctx)
	cancel()
	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval. When it comes
// back, the selected date is reloaded.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			before := a.Mode()
			a.refreshMode(ctx)
			if before == ModeOffline && a.Mode() == ModeOnline {
				if err := a.session.Reload(ctx); err != nil {
					a.logger.Warn(ctx, "reload after reconnect", "error", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
