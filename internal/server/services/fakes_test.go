package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/dailies"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/images"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/quotes"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/refreshtokens"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tags"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tasks"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/users"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/videos"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeRepoManager hands out the same fake for every DBTX, so writes made
// inside a transaction are visible afterwards.
type fakeRepoManager struct {
	users    users.Repository
	refresh  refreshtokens.Repository
	dailies  *memDailies
	images   *memImages
	videos   *memVideos
	tags     *memTags
	tasks    *memTasks
	quotes   *memQuotes
	migrated bool
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		dailies: &memDailies{rows: map[string]*journal.DailyEntry{}},
		images:  &memImages{},
		videos:  &memVideos{},
		tags:    &memTags{links: map[string][]string{}},
		tasks:   &memTasks{completions: map[string]time.Time{}},
		quotes:  &memQuotes{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return nil
}
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }
func (m *fakeRepoManager) Dailies(dbx.DBTX) dailies.Repository             { return m.dailies }
func (m *fakeRepoManager) Images(dbx.DBTX) images.Repository               { return m.images }
func (m *fakeRepoManager) Videos(dbx.DBTX) videos.Repository               { return m.videos }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository                   { return m.tags }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository                 { return m.tasks }
func (m *fakeRepoManager) Quotes(dbx.DBTX) quotes.Repository               { return m.quotes }

var seq int

func nextID(prefix string) string {
	seq++
	return fmt.Sprintf("%s%d", prefix, seq)
}

type memDailies struct {
	rows   map[string]*journal.DailyEntry
	getErr error
}

func dayKey(userID string, date journal.Date) string { return userID + "|" + date.String() }

func (r *memDailies) Get(_ context.Context, userID string, date journal.Date) (*journal.DailyEntry, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	e, ok := r.rows[dayKey(userID, date)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	cp.Data = journal.DailyData{
		Notes:            e.Data.Notes,
		ImportantEvents:  e.Data.ImportantEvents,
		FeaturedImageURL: e.Data.FeaturedImageURL,
	}
	return &cp, nil
}

func (r *memDailies) Upsert(_ context.Context, e *journal.DailyEntry) error {
	k := dayKey(e.UserID, e.Date)
	if cur, ok := r.rows[k]; ok {
		e.ID = cur.ID
	} else {
		e.ID = nextID("e")
	}
	e.UpdatedAt = time.Now()
	cp := *e
	r.rows[k] = &cp
	return nil
}

func (r *memDailies) Ensure(_ context.Context, userID string, date journal.Date) (string, error) {
	k := dayKey(userID, date)
	if cur, ok := r.rows[k]; ok {
		return cur.ID, nil
	}
	e := &journal.DailyEntry{ID: nextID("e"), UserID: userID, Date: date}
	r.rows[k] = e
	return e.ID, nil
}

func (r *memDailies) SetFeatured(_ context.Context, entryID, url string) error {
	for _, e := range r.rows {
		if e.ID == entryID {
			e.Data.FeaturedImageURL = url
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memDailies) ListRange(_ context.Context, userID string, from, to journal.Date) ([]dailies.Summary, error) {
	var out []dailies.Summary
	for _, e := range r.rows {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, dailies.Summary{Date: e.Date, FeaturedImageURL: e.Data.FeaturedImageURL, HasNotes: e.Data.Notes != ""})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type memImages struct {
	rows   []journal.Image
	addErr error
}

func (r *memImages) List(_ context.Context, entryID string) ([]journal.Image, error) {
	var out []journal.Image
	for _, img := range r.rows {
		if img.EntryID == entryID {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memImages) Add(_ context.Context, img *journal.Image) error {
	if r.addErr != nil {
		return r.addErr
	}
	for i := range r.rows {
		if r.rows[i].EntryID == img.EntryID && r.rows[i].URL == img.URL {
			r.rows[i].Position = img.Position
			if img.StorageKey != "" {
				r.rows[i].StorageKey = img.StorageKey
			}
			img.ID = r.rows[i].ID
			return nil
		}
	}
	img.ID = nextID("i")
	r.rows = append(r.rows, *img)
	return nil
}

func (r *memImages) Delete(_ context.Context, entryID, url string) (string, error) {
	for i, img := range r.rows {
		if img.EntryID == entryID && img.URL == url {
			r.rows = slices.Delete(r.rows, i, i+1)
			return img.StorageKey, nil
		}
	}
	return "", common.ErrorNotFound
}

type memVideo struct {
	journal.Video
	position int
}

type memVideos struct {
	rows []memVideo
}

func (r *memVideos) List(_ context.Context, entryID string) ([]journal.Video, error) {
	var sel []memVideo
	for _, v := range r.rows {
		if v.EntryID == entryID {
			sel = append(sel, v)
		}
	}
	sort.SliceStable(sel, func(i, j int) bool { return sel[i].position < sel[j].position })
	out := make([]journal.Video, 0, len(sel))
	for _, v := range sel {
		out = append(out, v.Video)
	}
	return out, nil
}

func (r *memVideos) Add(_ context.Context, v *journal.Video, position int) error {
	for i := range r.rows {
		if r.rows[i].EntryID == v.EntryID && r.rows[i].URL == v.URL {
			r.rows[i].position = position
			v.ID = r.rows[i].ID
			return nil
		}
	}
	v.ID = nextID("v")
	r.rows = append(r.rows, memVideo{Video: journal.Video{ID: v.ID, EntryID: v.EntryID, URL: v.URL}, position: position})
	return nil
}

func (r *memVideos) Delete(_ context.Context, entryID, url string) error {
	for i, v := range r.rows {
		if v.EntryID == entryID && v.URL == url {
			r.rows = slices.Delete(r.rows, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memTags struct {
	rows  []journal.Tag
	links map[string][]string
}

func (r *memTags) Ensure(_ context.Context, userID, name string) (journal.Tag, error) {
	for _, t := range r.rows {
		if t.UserID == userID && t.Name == name {
			return t, nil
		}
	}
	t := journal.Tag{ID: nextID("t"), UserID: userID, Name: name}
	r.rows = append(r.rows, t)
	return t, nil
}

func (r *memTags) Attach(_ context.Context, videoID, tagID string) error {
	if !slices.Contains(r.links[videoID], tagID) {
		r.links[videoID] = append(r.links[videoID], tagID)
	}
	return nil
}

func (r *memTags) ListByUser(_ context.Context, userID string) ([]journal.Tag, error) {
	var out []journal.Tag
	for _, t := range r.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memTags) ForEntry(context.Context, string) (map[string][]journal.Tag, error) {
	return nil, nil
}

type memTasks struct {
	rows        []journal.Task
	completions map[string]time.Time
}

func (r *memTasks) list(userID string, keep func(journal.Task) bool) []journal.Task {
	var out []journal.Task
	for _, t := range r.rows {
		if t.UserID == userID && keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r *memTasks) ListForDate(_ context.Context, userID string, date journal.Date) ([]journal.Task, error) {
	return r.list(userID, func(t journal.Task) bool { return t.Date == date }), nil
}

func (r *memTasks) ListGlobal(_ context.Context, userID string) ([]journal.Task, error) {
	return r.list(userID, journal.Task.Global), nil
}

func (r *memTasks) Get(_ context.Context, userID, id string) (*journal.Task, error) {
	for _, t := range r.rows {
		if t.UserID == userID && t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memTasks) Create(_ context.Context, t *journal.Task) error {
	t.ID = nextID("k")
	t.CreatedAt = time.Now()
	r.rows = append(r.rows, *t)
	return nil
}

func (r *memTasks) Update(_ context.Context, t *journal.Task) error {
	for i := range r.rows {
		if r.rows[i].UserID == t.UserID && r.rows[i].ID == t.ID {
			r.rows[i] = *t
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memTasks) Delete(_ context.Context, userID, id string) error {
	for i, t := range r.rows {
		if t.UserID == userID && t.ID == id {
			r.rows = slices.Delete(r.rows, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memTasks) Completions(_ context.Context, _ string, date journal.Date) (map[string]time.Time, error) {
	out := map[string]time.Time{}
	for k, at := range r.completions {
		id, d, _ := strings.Cut(k, " ")
		if d == date.String() {
			out[id] = at
		}
	}
	return out, nil
}

func (r *memTasks) SetCompletion(_ context.Context, taskID string, date journal.Date, at *time.Time) error {
	k := taskID + " " + date.String()
	if at == nil {
		delete(r.completions, k)
		return nil
	}
	r.completions[k] = *at
	return nil
}

type memQuotes struct {
	rows []journal.Quote
}

func (r *memQuotes) List(context.Context, string) ([]journal.Quote, error) {
	return slices.Clone(r.rows), nil
}

func (r *memQuotes) Create(_ context.Context, _ string, q *journal.Quote) error {
	q.ID = nextID("q")
	if q.DateAdded.IsZero() {
		q.DateAdded = journal.Today()
	}
	r.rows = append([]journal.Quote{*q}, r.rows...)
	return nil
}

func (r *memQuotes) Delete(_ context.Context, _ string, id string) error {
	for i, q := range r.rows {
		if q.ID == id {
			r.rows = slices.Delete(r.rows, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}

// fakeBlobs records deletions.
type fakeBlobs struct {
	deleted   []string
	deleteErr error
}

func (b *fakeBlobs) PresignUpload(context.Context, string, string, string, int64) (*Upload, error) {
	return &Upload{}, nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	return b.deleteErr
}
