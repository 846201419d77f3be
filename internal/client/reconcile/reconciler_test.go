package reconcile

import (
	"math/rand"
	"testing"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/state"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler holds deferred callbacks until tick is called.
type manualScheduler struct {
	deferred []func()
}

func (s *manualScheduler) Defer(fn func()) { s.deferred = append(s.deferred, fn) }

func (s *manualScheduler) tick() {
	batch := s.deferred
	s.deferred = nil
	for _, fn := range batch {
		fn()
	}
}

type push struct {
	date journal.Date
	data journal.DailyData
}

type fixture struct {
	store  *state.Store
	sched  *manualScheduler
	rec    *Reconciler
	pushes []push
	writes int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: state.New(), sched: &manualScheduler{}}
	f.store.Subscribe(func(string) { f.writes++ })
	f.rec = New(f.store, f.sched, func(d journal.Date, data journal.DailyData) {
		f.pushes = append(f.pushes, push{date: d, data: data})
	})
	return f
}

const (
	may1 = journal.Date("2024-05-01")
	may2 = journal.Date("2024-05-02")
)

func TestInbound_IdenticalLoadsWriteAtMostOnce(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)
	f.writes = 0

	loaded := journal.DailyData{Notes: "ran 5k", ImageURLs: []string{"a"}, FeaturedImageURL: "a"}
	for i := 0; i < 5; i++ {
		applied := f.rec.Inbound(may1, loaded.Clone())
		assert.Equal(t, i == 0, applied)
		f.sched.tick()
	}

	assert.Equal(t, 1, f.writes)
	assert.Empty(t, f.pushes, "applying inbound data never pushes")
	assert.Equal(t, "ran 5k", f.store.Notes())
}

func TestInbound_GuardHoldsUntilDeferredClear(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)

	f.rec.Inbound(may1, journal.DailyData{Notes: "server"})
	assert.True(t, f.rec.Applying())

	// a store write inside the same batch is part of applying
	f.store.SetImportantEvents("also server")
	assert.Empty(t, f.pushes)

	f.sched.tick()
	assert.False(t, f.rec.Applying())

	f.store.SetNotes("edited")
	require.Len(t, f.pushes, 1)
	assert.Equal(t, "edited", f.pushes[0].data.Notes)
}

func TestInbound_EqualToLocalStateIsNoop(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)
	f.sched.tick()

	assert.False(t, f.rec.Inbound(may1, journal.DailyData{}), "empty load on an empty day")
	assert.False(t, f.rec.Inbound(may1, journal.DailyData{ImageURLs: []string{}}))
}

func TestInbound_OtherDateIgnored(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may2)
	f.writes = 0

	assert.False(t, f.rec.Inbound(may1, journal.DailyData{Notes: "stale"}))
	assert.Zero(t, f.writes)
	assert.Empty(t, f.store.Notes())
}

func TestInbound_NoDateSelectedIgnored(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.rec.Inbound("", journal.DailyData{Notes: "x"}))
}

func TestChanges_PushOncePerDistinctSnapshot(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)

	f.store.SetNotes("a")
	f.store.SetNotes("a")
	f.store.SetImageURLs(nil)
	f.store.SetImageURLs([]string{})
	f.store.SetNotes("b")
	f.store.SetNotes("a")

	require.Len(t, f.pushes, 3)
	assert.Equal(t, []string{"a", "b", "a"}, []string{
		f.pushes[0].data.Notes, f.pushes[1].data.Notes, f.pushes[2].data.Notes,
	})
	for _, p := range f.pushes {
		assert.Equal(t, may1, p.date)
	}
}

func TestChanges_RandomSequencesNeverPushDuplicates(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	values := []string{"", "x", "y"}

	for run := 0; run < 50; run++ {
		f := newFixture(t)
		f.rec.SelectDate(may1)
		prev := f.store.Snapshot()
		want := 0

		for step := 0; step < 30; step++ {
			switch rnd.Intn(3) {
			case 0:
				f.store.SetNotes(values[rnd.Intn(len(values))])
			case 1:
				f.store.SetImportantEvents(values[rnd.Intn(len(values))])
			case 2:
				if v := values[rnd.Intn(len(values))]; v == "" {
					f.store.SetVideoURLs(nil)
				} else {
					f.store.SetVideoURLs([]string{v})
				}
			}
			if snap := f.store.Snapshot(); snap != prev {
				want++
				prev = snap
			}
		}

		require.Len(t, f.pushes, want)
		for i := 1; i < len(f.pushes); i++ {
			require.NotEqual(t,
				journal.Canonical(f.pushes[i-1].data),
				journal.Canonical(f.pushes[i].data))
		}
	}
}

func TestSelectDate_ClearsWithoutPush(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)
	f.store.SetNotes("ran 5k")
	f.store.SetImageURLs([]string{"a"})
	f.store.SetTodos([]journal.TodoItem{{ID: "t", Text: "stretch"}})
	pushed := len(f.pushes)

	f.rec.SelectDate(may2)

	assert.Len(t, f.pushes, pushed)
	assert.Equal(t, may2, f.rec.Date())
	assert.Equal(t, journal.Canonical(journal.DailyData{}), f.store.Snapshot())
	assert.Equal(t, f.store.Snapshot(), f.rec.LastSynced())

	f.rec.ClearDate()
	assert.True(t, f.rec.Date().IsZero())
	assert.Len(t, f.pushes, pushed)
}

func TestNoDate_EditsAreNotPushed(t *testing.T) {
	f := newFixture(t)
	f.store.SetNotes("nowhere")
	assert.Empty(t, f.pushes)
}

func TestPersisted_RecordsSnapshotWithoutPush(t *testing.T) {
	f := newFixture(t)
	f.rec.SelectDate(may1)

	f.rec.Persisted(func() {
		f.store.SetImageURLs([]string{"a"})
		f.store.SetFeaturedImageURL("a")
	})
	assert.Empty(t, f.pushes)
	assert.Equal(t, f.store.Snapshot(), f.rec.LastSynced())

	// loading what was just persisted is a no-op
	assert.False(t, f.rec.Inbound(may1, journal.DailyData{ImageURLs: []string{"a"}, FeaturedImageURL: "a"}))

	f.store.SetNotes("then typed")
	require.Len(t, f.pushes, 1)
	assert.Equal(t, []string{"a"}, f.pushes[0].data.ImageURLs)
}
