// Package session runs one journal view: the selected date, its local state,
// and the machinery that keeps that state in step with storage.
//
// Every store access happens on a single event loop. Loads, pushes and
// mutation writes run off the loop and hand their results back to it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/calendar"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/mutations"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/notify"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/reconcile"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/repositories/localstore"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/services"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/state"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/netx"
)

// Auth is the part of the auth service a session depends on.
type Auth interface {
	persistence.AuthState
	Subscribe(fn func(s services.Session, ok bool)) func()
	Expire(ctx context.Context)
}

type Config struct {
	PushDebounce    time.Duration
	MaxUploadBytes  int64
	LocalQuotaBytes int
	MediaDir        string
	// LoadTimeout bounds a reload triggered by a session change.
	LoadTimeout time.Duration
}

type Deps struct {
	API      client.Client
	Auth     Auth
	Local    localstore.Repository
	Calendar calendar.Source
	Uploader *netx.Uploader
	Notifier notify.Notifier
	Logger   logging.Logger
}

type Session struct {
	cfg      Config
	api      client.Client
	auth     Auth
	local    localstore.Repository
	calendar calendar.Source
	notifier notify.Notifier
	logger   logging.Logger

	loop   *reconcile.Loop
	store  *state.Store
	rec    *reconcile.Reconciler
	outbox *reconcile.Outbox
	muts   *mutations.Handler

	days      *persistence.Switch[journal.DailyData]
	localDays persistence.Adapter[journal.DailyData]
	templates persistence.Adapter[[]journal.TodoItem]
	quotes    persistence.Adapter[[]journal.Quote]

	gen atomic.Uint64

	mu        sync.Mutex
	cancel    context.CancelFunc
	closed    bool
	wg        sync.WaitGroup
	unsubAuth func()
}

func New(cfg Config, d Deps) *Session {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 30 * time.Second
	}
	s := &Session{
		cfg:      cfg,
		api:      d.API,
		auth:     d.Auth,
		local:    d.Local,
		calendar: d.Calendar,
		notifier: d.Notifier,
		logger:   d.Logger,
		loop:     reconcile.NewLoop(),
		store:    state.New(),
	}

	localDays := persistence.NewLocal[journal.DailyData](d.Local, d.Logger, cfg.LocalQuotaBytes)
	remoteDays := persistence.NewRemote(s.remoteLoadDay, s.remoteSaveDay, nil)
	s.days = persistence.NewSwitch[journal.DailyData](localDays, remoteDays, d.Auth, d.Logger)
	s.localDays = localDays
	s.templates = persistence.NewLocal[[]journal.TodoItem](d.Local, d.Logger, cfg.LocalQuotaBytes)
	s.quotes = persistence.NewLocal[[]journal.Quote](d.Local, d.Logger, cfg.LocalQuotaBytes)

	s.outbox = reconcile.NewOutbox(s.send, cfg.PushDebounce, s.pushFailed)
	s.rec = reconcile.New(s.store, s.loop, s.outbox.Enqueue)

	records := mutations.NewSwitchRecords(
		mutations.NewLocalRecords(localDays, s.templates),
		mutations.NewRemoteRecords(d.API),
		d.Auth,
	)
	media := mutations.NewSwitchMedia(
		mutations.NewLocalMedia(cfg.MediaDir),
		mutations.NewRemoteMedia(d.API, d.Uploader),
		d.Auth,
	)
	s.muts = mutations.New(mutations.Deps{
		Loop:           s.loop,
		Store:          s.store,
		Reconciler:     s.rec,
		Outbox:         s.outbox,
		Records:        records,
		Media:          media,
		Notifier:       d.Notifier,
		Logger:         d.Logger,
		Generation:     s.gen.Load,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	return s
}

// Start runs the event loop and the outbox until Close.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		_ = s.loop.Run(ctx)
	}()
	go func() {
		defer s.wg.Done()
		_ = s.outbox.Run(ctx)
	}()

	s.unsubAuth = s.auth.Subscribe(func(_ services.Session, _ bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			rctx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
			defer cancel()
			if err := s.Reload(rctx); err != nil && ctx.Err() == nil {
				s.logger.Warn(rctx, "reload after session change failed", "error", err)
			}
		}()
	})
}

// Close sends pending edits and stops the session.
func (s *Session) Close(ctx context.Context) error {
	if s.unsubAuth != nil {
		s.unsubAuth()
	}
	err := s.outbox.Flush(ctx)

	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	return err
}

// Flush sends pending edits now.
func (s *Session) Flush(ctx context.Context) error {
	return s.outbox.Flush(ctx)
}

// Pending returns how many dates have unsent edits.
func (s *Session) Pending() int { return s.outbox.Pending() }

// Remote reports whether data currently goes to the server.
func (s *Session) Remote() bool { return s.days.Remote() }

// Generation identifies the current view; it changes on every date change
// and reload.
func (s *Session) Generation() uint64 { return s.gen.Load() }

func (s *Session) remoteLoadDay(ctx context.Context, key string) (journal.DailyData, error) {
	date, ok := persistence.DateOf(key)
	if !ok {
		return journal.DailyData{}, fmt.Errorf("bad key %q: %w", key, common.ErrValidation)
	}
	e, err := s.api.GetDay(ctx, date)
	if err != nil {
		return journal.DailyData{}, s.checkAuth(ctx, err)
	}
	return e.Data, nil
}

func (s *Session) remoteSaveDay(ctx context.Context, key string, data journal.DailyData) error {
	date, ok := persistence.DateOf(key)
	if !ok {
		return fmt.Errorf("bad key %q: %w", key, common.ErrValidation)
	}
	_, err := s.api.SaveDay(ctx, date, data)
	return s.checkAuth(ctx, err)
}

// checkAuth drops an online session the server has stopped accepting.
func (s *Session) checkAuth(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrorUnauthorized) && s.auth.Authenticated() {
		s.auth.Expire(ctx)
	}
	return err
}

// send is the outbox sender: it stores the snapshot of one date.
func (s *Session) send(ctx context.Context, date journal.Date, data journal.DailyData) error {
	data.CalendarEvents = nil
	return s.days.Save(ctx, persistence.DailyKey(date), data)
}

func (s *Session) pushFailed(date journal.Date, err error) {
	s.logger.Warn(context.Background(), "push failed", "date", date, "error", err)
	notify.Errorf(s.notifier, "Could not save %s: %v", date, err)
}
