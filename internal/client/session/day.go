package session

import (
	"context"
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"golang.org/x/sync/errgroup"
)

// View is what the session shows for the selected date.
type View struct {
	Date journal.Date
	Data journal.DailyData
	// Remote is set when the data came from the server.
	Remote bool
}

// SelectDate switches to date: pending edits are sent, the fields are
// cleared without any push, and the stored data for date is loaded.
func (s *Session) SelectDate(ctx context.Context, date journal.Date) error {
	if date.IsZero() {
		return fmt.Errorf("no date: %w", common.ErrValidation)
	}
	if err := s.outbox.Flush(ctx); err != nil {
		return err
	}

	gen := s.gen.Add(1)
	if err := s.loop.Do(ctx, func() { s.rec.SelectDate(date) }); err != nil {
		return err
	}
	return s.fill(ctx, gen, date)
}

// Reload loads the selected date again and applies whatever changed.
func (s *Session) Reload(ctx context.Context) error {
	if err := s.outbox.Flush(ctx); err != nil {
		return err
	}

	gen := s.gen.Add(1)
	var date journal.Date
	if err := s.loop.Do(ctx, func() { date = s.rec.Date() }); err != nil {
		return err
	}
	if date.IsZero() {
		return nil
	}
	return s.fill(ctx, gen, date)
}

// fill loads date and applies it unless the view moved on meanwhile. An edit
// of date that could not be sent yet wins over the loaded copy.
func (s *Session) fill(ctx context.Context, gen uint64, date journal.Date) error {
	data, err := s.load(ctx, date)
	if err != nil {
		s.logger.Warn(ctx, "load failed", "date", date, "error", err)
		return err
	}

	return s.loop.Do(ctx, func() {
		if s.gen.Load() != gen || s.rec.Date() != date {
			s.logger.Debug(ctx, "dropping stale load", "date", date)
			return
		}
		if unsent, ok := s.outbox.Unsent(date); ok {
			s.logger.Debug(ctx, "keeping unsent edit over loaded copy", "date", date)
			unsent.CalendarEvents = data.CalendarEvents
			data = unsent
		}
		s.rec.Inbound(date, data)
	})
}

// load fetches the entry, the todos and the calendar events of date at the
// same time. A calendar failure leaves the events empty.
func (s *Session) load(ctx context.Context, date journal.Date) (journal.DailyData, error) {
	remote := s.days.Remote()

	var (
		data      journal.DailyData
		todos     []journal.TodoItem
		templates []journal.TodoItem
		events    []journal.CalendarEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, _, err := s.days.Load(gctx, persistence.DailyKey(date))
		data = d
		return err
	})
	g.Go(func() error {
		if !remote {
			t, _, err := s.templates.Load(gctx, persistence.GlobalTodosKey)
			templates = t
			return err
		}
		t, err := s.api.ListTasks(gctx, date)
		if err != nil {
			return fmt.Errorf("list tasks: %w: %w", common.ErrRemoteFailure, s.checkAuth(gctx, err))
		}
		todos = t
		return nil
	})
	g.Go(func() error {
		if s.calendar == nil {
			return nil
		}
		ev, err := s.calendar.Events(gctx, date)
		if err != nil {
			s.logger.Warn(gctx, "calendar unavailable", "date", date, "error", err)
			return nil
		}
		events = ev
		return nil
	})
	if err := g.Wait(); err != nil {
		return journal.DailyData{}, err
	}

	if remote {
		data.Todos = todos
	} else {
		data.Todos = localTodos(data.Todos, templates)
	}
	data.CalendarEvents = events
	return journal.Normalize(data), nil
}

// localTodos rebuilds a stored day's list against the current global
// templates, keeping the day's completion of each global item.
func localTodos(stored, templates []journal.TodoItem) []journal.TodoItem {
	dated, globals := journal.SplitTodos(stored)
	done := make(map[string]time.Time)
	for _, g := range globals {
		if g.Completed && g.CompletedAt != nil {
			done[g.ID] = *g.CompletedAt
		}
	}
	return journal.MaterializeTodos(dated, templates, done)
}

// View returns the selected date and its current data.
func (s *Session) View(ctx context.Context) (View, error) {
	var v View
	err := s.loop.Do(ctx, func() {
		v = View{Date: s.rec.Date(), Data: s.store.Data(), Remote: s.days.Remote()}
	})
	return v, err
}

// SetNotes edits the notes of the selected date. The change is pushed once
// the date has been quiet for the debounce window.
func (s *Session) SetNotes(ctx context.Context, notes string) error {
	return s.edit(ctx, func() { s.store.SetNotes(notes) })
}

// SetImportantEvents edits the free-text events of the selected date.
func (s *Session) SetImportantEvents(ctx context.Context, events string) error {
	return s.edit(ctx, func() { s.store.SetImportantEvents(events) })
}

func (s *Session) edit(ctx context.Context, fn func()) error {
	var err error
	doErr := s.loop.Do(ctx, func() {
		if s.rec.Date().IsZero() {
			err = fmt.Errorf("no date selected: %w", common.ErrValidation)
			return
		}
		fn()
	})
	if doErr != nil {
		return doErr
	}
	return err
}
