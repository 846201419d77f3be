// Package reconcile keeps the local state of the selected date and its
// persisted copy in step without feedback loops.
//
// Inbound data (a load completing) is written into the store under a guard so
// the resulting change events do not bounce back as pushes. Local edits are
// pushed outbound only when the canonical snapshot actually changed. The
// Outbox serializes and coalesces those pushes per date, and the Loop is the
// single goroutine on which all of this runs.
package reconcile

import (
	"github.com/saketh1999/consistency-cal-sub000/internal/client/state"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Pusher receives local changes that need persisting.
type Pusher func(date journal.Date, data journal.DailyData)

type Reconciler struct {
	store *state.Store
	sched Scheduler
	push  Pusher

	date     journal.Date
	last     string
	applying bool
	quiet    bool
}

// New attaches a reconciler to store. Until SelectDate is called no date is
// selected and nothing is pushed.
func New(store *state.Store, sched Scheduler, push Pusher) *Reconciler {
	r := &Reconciler{
		store: store,
		sched: sched,
		push:  push,
		last:  store.Snapshot(),
	}
	store.Subscribe(r.changed)
	return r
}

// Date is the currently selected date, zero when none.
func (r *Reconciler) Date() journal.Date { return r.date }

// Applying reports whether inbound data is being applied.
func (r *Reconciler) Applying() bool { return r.applying }

// LastSynced is the snapshot last loaded or pushed.
func (r *Reconciler) LastSynced() string { return r.last }

// Inbound applies data loaded for date. Data for another date is ignored, as
// is data identical to the last synced snapshot. It reports whether the
// store was written.
func (r *Reconciler) Inbound(date journal.Date, data journal.DailyData) bool {
	if date != r.date || date.IsZero() {
		return false
	}
	snap := journal.Canonical(data)
	if snap == r.last {
		return false
	}

	r.applying = true
	r.store.SetAll(data)
	r.last = snap
	r.sched.Defer(func() { r.applying = false })
	return true
}

// SelectDate switches to date, clearing every field without pushing.
func (r *Reconciler) SelectDate(date journal.Date) {
	r.silently(r.store.Reset)
	r.date = date
	r.last = r.store.Snapshot()
}

// ClearDate drops the selection entirely.
func (r *Reconciler) ClearDate() {
	r.SelectDate("")
}

// Persisted runs fn, whose store writes the caller persists itself, and
// records the result as synced without pushing it.
func (r *Reconciler) Persisted(fn func()) {
	r.silently(fn)
	r.last = r.store.Snapshot()
}

func (r *Reconciler) silently(fn func()) {
	prev := r.quiet
	r.quiet = true
	defer func() { r.quiet = prev }()
	fn()
}

func (r *Reconciler) changed(string) {
	if r.applying || r.quiet || r.date.IsZero() {
		return
	}
	snap := r.store.Snapshot()
	if snap == r.last {
		return
	}
	r.last = snap
	r.push(r.date, r.store.Data())
}
