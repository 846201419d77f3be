// Package mutations applies user edits to lists and the featured image
// optimistically: the store changes at once, the write goes out afterwards,
// and a failed write is reported once without rolling the store back.
package mutations

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/notify"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/reconcile"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/state"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/filex"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

// Result reports how a mutation ended. Notified is set when the user has
// already been told about Err. Refetch asks the caller to reload the date
// because a failed delete may have left the list out of step.
type Result struct {
	Err      error
	Notified bool
	Refetch  bool
}

// OK reports whether the mutation was persisted.
func (r Result) OK() bool { return r.Err == nil }

// Doer runs fn on the event loop and waits for it.
type Doer interface {
	Do(ctx context.Context, fn func()) error
}

// Serializer orders mutation writes with pending outbound pushes.
type Serializer interface {
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
	Refresh(date journal.Date, data journal.DailyData)
}

type Deps struct {
	Loop       Doer
	Store      *state.Store
	Reconciler *reconcile.Reconciler
	Outbox     Serializer
	Records    Records
	Media      Media
	Notifier   notify.Notifier
	Logger     logging.Logger
	// Generation identifies the current session view; responses that
	// arrive after it changed are dropped.
	Generation     func() uint64
	MaxUploadBytes int64
}

// Handler methods are called off the event loop. Each blocks until the write
// finishes, but the store reflects the change before the write starts.
type Handler struct {
	Deps
	now   func() time.Time
	newID func() string
}

func New(d Deps) *Handler {
	return &Handler{Deps: d, now: time.Now, newID: uuid.NewString}
}

// edit is one optimistic write: the date it applied to, the generation it
// was made in and the resulting state. skip means there was nothing to do.
type edit struct {
	change Change
	gen    uint64
	skip   bool
	err    error
}

// apply runs fn on the loop against the current data. fn returns the new
// data, or ok=false to leave the store untouched.
func (h *Handler) apply(ctx context.Context, fn func(d journal.DailyData) (journal.DailyData, bool, error)) edit {
	var e edit
	err := h.Loop.Do(ctx, func() {
		date := h.Reconciler.Date()
		if date.IsZero() {
			e.err = fmt.Errorf("no date selected: %w", common.ErrValidation)
			return
		}
		next, ok, err := fn(h.Store.Data())
		if err != nil {
			e.err = err
			return
		}
		if !ok {
			e.skip = true
			return
		}

		h.Reconciler.Persisted(func() { h.write(next) })
		e.change = Change{Date: date, Data: h.Store.Data()}
		e.gen = h.Generation()
		h.Outbox.Refresh(date, e.change.Data)
	})
	if err != nil {
		e.err = err
	}
	return e
}

func (h *Handler) write(d journal.DailyData) {
	cur := h.Store.Data()
	if !slices.Equal(cur.ImageURLs, d.ImageURLs) {
		h.Store.SetImageURLs(d.ImageURLs)
	}
	if cur.FeaturedImageURL != d.FeaturedImageURL {
		h.Store.SetFeaturedImageURL(d.FeaturedImageURL)
	}
	if !slices.Equal(cur.VideoURLs, d.VideoURLs) {
		h.Store.SetVideoURLs(d.VideoURLs)
	}
	if journal.Canonical(journal.DailyData{Todos: cur.Todos}) != journal.Canonical(journal.DailyData{Todos: d.Todos}) {
		h.Store.SetTodos(d.Todos)
	}
}

// persist sends the write and turns a failure into one notification.
func (h *Handler) persist(ctx context.Context, e edit, what string, isDelete bool, call func(ctx context.Context) error) Result {
	err := h.Outbox.Exclusive(ctx, call)
	if err == nil {
		return Result{}
	}

	h.Logger.Warn(ctx, "mutation failed", "op", what, "date", e.change.Date, "error", err)
	notify.Errorf(h.Notifier, "Could not %s for %s: %v", what, e.change.Date, err)
	return Result{Err: err, Notified: true, Refetch: isDelete}
}

// current reports whether the view is still the one the edit was made in.
func (h *Handler) current(e edit) bool {
	return h.Generation() == e.gen && h.Reconciler.Date() == e.change.Date
}

func early(e edit) (Result, bool) {
	if e.err != nil {
		return Result{Err: e.err}, true
	}
	if e.skip {
		return Result{}, true
	}
	return Result{}, false
}

func (h *Handler) AddImage(ctx context.Context, url string) Result {
	return h.addImage(ctx, strings.TrimSpace(url), "")
}

// AddImageFile validates and uploads the file, then adds it like AddImage.
// Nothing is shown until the upload has succeeded.
func (h *Handler) AddImageFile(ctx context.Context, path string) Result {
	up, err := filex.ReadUpload(path, h.MaxUploadBytes)
	if err != nil {
		return Result{Err: err}
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return Result{Err: fmt.Errorf("%s is %s, not an image: %w", up.Name, up.ContentType, common.ErrValidation)}
	}

	url, key, err := h.Media.Store(ctx, up)
	if err != nil {
		h.Logger.Warn(ctx, "upload failed", "file", up.Name, "error", err)
		notify.Errorf(h.Notifier, "Could not upload %s: %v", up.Name, err)
		return Result{Err: err, Notified: true}
	}
	return h.addImage(ctx, url, key)
}

func (h *Handler) addImage(ctx context.Context, url, key string) Result {
	if url == "" {
		return Result{Err: fmt.Errorf("empty image url: %w", common.ErrValidation)}
	}
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		if slices.Contains(d.ImageURLs, url) {
			return d, false, nil
		}
		return journal.AddImage(d, url), true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "add image", false, func(ctx context.Context) error {
		return h.Records.AddImage(ctx, e.change, url, key)
	})
}

func (h *Handler) RemoveImage(ctx context.Context, url string) Result {
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		if !slices.Contains(d.ImageURLs, url) {
			return d, false, nil
		}
		return journal.RemoveImage(d, url), true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "remove image", true, func(ctx context.Context) error {
		return h.Records.RemoveImage(ctx, e.change, url)
	})
}

// SelectFeatured applies the featured-image cycling policy to url.
func (h *Handler) SelectFeatured(ctx context.Context, url string) Result {
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		if !slices.Contains(d.ImageURLs, url) {
			return d, false, fmt.Errorf("image %q is not on this day: %w", url, common.ErrValidation)
		}
		d.FeaturedImageURL = journal.SelectFeatured(d.ImageURLs, d.FeaturedImageURL, url)
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "change featured image", false, func(ctx context.Context) error {
		return h.Records.SetFeatured(ctx, e.change)
	})
}

func (h *Handler) AddVideo(ctx context.Context, url string, tags []string) Result {
	url = strings.TrimSpace(url)
	if url == "" {
		return Result{Err: fmt.Errorf("empty video url: %w", common.ErrValidation)}
	}
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		if slices.Contains(d.VideoURLs, url) {
			return d, false, nil
		}
		d.VideoURLs = append(slices.Clone(d.VideoURLs), url)
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "add video", false, func(ctx context.Context) error {
		return h.Records.AddVideo(ctx, e.change, url, tags)
	})
}

func (h *Handler) RemoveVideo(ctx context.Context, url string) Result {
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		if !slices.Contains(d.VideoURLs, url) {
			return d, false, nil
		}
		d.VideoURLs = slices.DeleteFunc(slices.Clone(d.VideoURLs), func(u string) bool { return u == url })
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "remove video", true, func(ctx context.Context) error {
		return h.Records.RemoveVideo(ctx, e.change, url)
	})
}

// AddTodo appends a todo under a client id. Once stored, the id the store
// assigned replaces it in place, unless the view has moved on.
func (h *Handler) AddTodo(ctx context.Context, text string, global bool) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Err: fmt.Errorf("empty todo: %w", common.ErrValidation)}
	}
	item := journal.TodoItem{ID: h.newID(), Text: text, Global: global}

	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		d.Todos = append(d.Todos, item)
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}

	var stored journal.TodoItem
	res := h.persist(ctx, e, "add todo", false, func(ctx context.Context) error {
		var err error
		stored, err = h.Records.AddTodo(ctx, e.change, item)
		return err
	})
	if !res.OK() || stored.ID == "" || stored.ID == item.ID {
		return res
	}

	err := h.Loop.Do(ctx, func() {
		if !h.current(e) {
			h.Logger.Debug(ctx, "dropping stale todo id", "date", e.change.Date)
			return
		}
		h.Reconciler.Persisted(func() {
			todos := h.Store.Todos()
			for i := range todos {
				if todos[i].ID == item.ID {
					todos[i].ID = stored.ID
				}
			}
			h.Store.SetTodos(todos)
		})
		h.Outbox.Refresh(e.change.Date, h.Store.Data())
	})
	return Result{Err: err}
}

func (h *Handler) ToggleTodo(ctx context.Context, id string) Result {
	var toggled journal.TodoItem
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		i := slices.IndexFunc(d.Todos, func(t journal.TodoItem) bool { return t.ID == id })
		if i < 0 {
			return d, false, fmt.Errorf("todo %s: %w", id, common.ErrorNotFound)
		}
		d.Todos[i] = d.Todos[i].Toggle(h.now())
		toggled = d.Todos[i]
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "update todo", false, func(ctx context.Context) error {
		return h.Records.UpdateTodo(ctx, e.change, toggled)
	})
}

func (h *Handler) RemoveTodo(ctx context.Context, id string) Result {
	var removed journal.TodoItem
	e := h.apply(ctx, func(d journal.DailyData) (journal.DailyData, bool, error) {
		i := slices.IndexFunc(d.Todos, func(t journal.TodoItem) bool { return t.ID == id })
		if i < 0 {
			return d, false, nil
		}
		removed = d.Todos[i]
		d.Todos = slices.Delete(d.Todos, i, i+1)
		return d, true, nil
	})
	if r, done := early(e); done {
		return r
	}
	return h.persist(ctx, e, "remove todo", true, func(ctx context.Context) error {
		return h.Records.RemoveTodo(ctx, e.change, removed)
	})
}
