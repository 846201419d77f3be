package mutations

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/filex"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Change is the state of a date right after an optimistic write.
type Change struct {
	Date journal.Date
	Data journal.DailyData
}

// Records persists individual mutations. The remote implementation calls
// the matching server operation; the local one stores the whole snapshot.
type Records interface {
	AddImage(ctx context.Context, c Change, url, storageKey string) error
	RemoveImage(ctx context.Context, c Change, url string) error
	SetFeatured(ctx context.Context, c Change) error
	AddVideo(ctx context.Context, c Change, url string, tags []string) error
	RemoveVideo(ctx context.Context, c Change, url string) error
	// AddTodo returns the stored item, whose ID may differ from item.ID.
	AddTodo(ctx context.Context, c Change, item journal.TodoItem) (journal.TodoItem, error)
	UpdateTodo(ctx context.Context, c Change, item journal.TodoItem) error
	RemoveTodo(ctx context.Context, c Change, item journal.TodoItem) error
}

// RemoteRecords maps mutations onto server calls.
type RemoteRecords struct {
	api client.Client
}

var _ Records = (*RemoteRecords)(nil)

func NewRemoteRecords(api client.Client) *RemoteRecords {
	return &RemoteRecords{api: api}
}

func (r *RemoteRecords) AddImage(ctx context.Context, c Change, url, storageKey string) error {
	_, _, err := r.api.AddImage(ctx, c.Date, url, storageKey)
	return err
}

func (r *RemoteRecords) RemoveImage(ctx context.Context, c Change, url string) error {
	_, err := r.api.DeleteImage(ctx, c.Date, url)
	return err
}

// SetFeatured has no dedicated call: the featured image is part of the entry.
func (r *RemoteRecords) SetFeatured(ctx context.Context, c Change) error {
	_, err := r.api.SaveDay(ctx, c.Date, c.Data)
	return err
}

func (r *RemoteRecords) AddVideo(ctx context.Context, c Change, url string, tags []string) error {
	_, err := r.api.AddVideo(ctx, c.Date, url, tags)
	return err
}

func (r *RemoteRecords) RemoveVideo(ctx context.Context, c Change, url string) error {
	return r.api.DeleteVideo(ctx, c.Date, url)
}

func (r *RemoteRecords) AddTodo(ctx context.Context, c Change, item journal.TodoItem) (journal.TodoItem, error) {
	created, err := r.api.CreateTask(ctx, c.Date, item.Text, item.Global)
	if err != nil {
		return journal.TodoItem{}, err
	}
	return created, nil
}

func (r *RemoteRecords) UpdateTodo(ctx context.Context, c Change, item journal.TodoItem) error {
	_, err := r.api.UpdateTask(ctx, item.ID, c.Date, item.Text, item.Completed)
	return err
}

func (r *RemoteRecords) RemoveTodo(ctx context.Context, c Change, item journal.TodoItem) error {
	err := r.api.DeleteTask(ctx, item.ID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

// LocalRecords stores the snapshot of the date after each mutation. Global
// todo templates are kept under their own key.
type LocalRecords struct {
	days    persistence.Adapter[journal.DailyData]
	globals persistence.Adapter[[]journal.TodoItem]
}

var _ Records = (*LocalRecords)(nil)

func NewLocalRecords(days persistence.Adapter[journal.DailyData], globals persistence.Adapter[[]journal.TodoItem]) *LocalRecords {
	return &LocalRecords{days: days, globals: globals}
}

func (l *LocalRecords) save(ctx context.Context, c Change) error {
	d := c.Data.Clone()
	d.CalendarEvents = nil
	return l.days.Save(ctx, persistence.DailyKey(c.Date), d)
}

func (l *LocalRecords) AddImage(ctx context.Context, c Change, _, _ string) error {
	return l.save(ctx, c)
}

func (l *LocalRecords) RemoveImage(ctx context.Context, c Change, url string) error {
	if err := l.save(ctx, c); err != nil {
		return err
	}
	if err := filex.RemoveLocal(url); err != nil {
		return fmt.Errorf("remove local image: %w", err)
	}
	return nil
}

func (l *LocalRecords) SetFeatured(ctx context.Context, c Change) error {
	return l.save(ctx, c)
}

func (l *LocalRecords) AddVideo(ctx context.Context, c Change, _ string, _ []string) error {
	return l.save(ctx, c)
}

func (l *LocalRecords) RemoveVideo(ctx context.Context, c Change, _ string) error {
	return l.save(ctx, c)
}

func (l *LocalRecords) AddTodo(ctx context.Context, c Change, item journal.TodoItem) (journal.TodoItem, error) {
	if item.Global {
		templates, err := l.templates(ctx)
		if err != nil {
			return journal.TodoItem{}, err
		}
		templates = append(templates, journal.TodoItem{ID: item.ID, Text: item.Text, Global: true})
		if err := l.globals.Save(ctx, persistence.GlobalTodosKey, templates); err != nil {
			return journal.TodoItem{}, err
		}
	}
	return item, l.save(ctx, c)
}

func (l *LocalRecords) UpdateTodo(ctx context.Context, c Change, _ journal.TodoItem) error {
	return l.save(ctx, c)
}

func (l *LocalRecords) RemoveTodo(ctx context.Context, c Change, item journal.TodoItem) error {
	if item.Global {
		templates, err := l.templates(ctx)
		if err != nil {
			return err
		}
		templates = slices.DeleteFunc(templates, func(t journal.TodoItem) bool { return t.ID == item.ID })
		if err := l.globals.Save(ctx, persistence.GlobalTodosKey, templates); err != nil {
			return err
		}
	}
	return l.save(ctx, c)
}

func (l *LocalRecords) templates(ctx context.Context) ([]journal.TodoItem, error) {
	templates, _, err := l.globals.Load(ctx, persistence.GlobalTodosKey)
	return templates, err
}

// SwitchRecords picks remote or local records per call.
type SwitchRecords struct {
	local  Records
	remote Records
	auth   persistence.AuthState
}

var _ Records = (*SwitchRecords)(nil)

func NewSwitchRecords(local, remote Records, auth persistence.AuthState) *SwitchRecords {
	return &SwitchRecords{local: local, remote: remote, auth: auth}
}

func (s *SwitchRecords) pick() Records {
	if s.auth.Authenticated() {
		return s.remote
	}
	return s.local
}

func (s *SwitchRecords) AddImage(ctx context.Context, c Change, url, storageKey string) error {
	return s.pick().AddImage(ctx, c, url, storageKey)
}

func (s *SwitchRecords) RemoveImage(ctx context.Context, c Change, url string) error {
	return s.pick().RemoveImage(ctx, c, url)
}

func (s *SwitchRecords) SetFeatured(ctx context.Context, c Change) error {
	return s.pick().SetFeatured(ctx, c)
}

func (s *SwitchRecords) AddVideo(ctx context.Context, c Change, url string, tags []string) error {
	return s.pick().AddVideo(ctx, c, url, tags)
}

func (s *SwitchRecords) RemoveVideo(ctx context.Context, c Change, url string) error {
	return s.pick().RemoveVideo(ctx, c, url)
}

func (s *SwitchRecords) AddTodo(ctx context.Context, c Change, item journal.TodoItem) (journal.TodoItem, error) {
	return s.pick().AddTodo(ctx, c, item)
}

func (s *SwitchRecords) UpdateTodo(ctx context.Context, c Change, item journal.TodoItem) error {
	return s.pick().UpdateTodo(ctx, c, item)
}

func (s *SwitchRecords) RemoveTodo(ctx context.Context, c Change, item journal.TodoItem) error {
	return s.pick().RemoveTodo(ctx, c, item)
}
