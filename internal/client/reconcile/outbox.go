package reconcile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Sender persists one date's data.
type Sender func(ctx context.Context, date journal.Date, data journal.DailyData) error

// Outbox serializes outbound writes. Only the latest pending value per date
// is sent, after the date has been quiet for the debounce window. All sends,
// and any work run through Exclusive, happen one at a time, so writes for a
// date reach the store in the order they were made.
type Outbox struct {
	send     Sender
	debounce time.Duration
	onError  func(date journal.Date, err error)

	mu      sync.Mutex
	pending map[journal.Date]journal.DailyData
	ready   []journal.Date
	timers  map[journal.Date]*time.Timer
	wake    chan struct{}

	sendMu sync.Mutex
}

// NewOutbox builds an outbox. debounce <= 0 sends as soon as possible.
// onError is called, off the event loop, for every failed send. A value that
// failed stays pending for its date until a send of that date succeeds; it
// is retried by the next Flush or when the date is edited again.
func NewOutbox(send Sender, debounce time.Duration, onError func(date journal.Date, err error)) *Outbox {
	return &Outbox{
		send:     send,
		debounce: debounce,
		onError:  onError,
		pending:  make(map[journal.Date]journal.DailyData),
		timers:   make(map[journal.Date]*time.Timer),
		wake:     make(chan struct{}, 1),
	}
}

// Enqueue replaces the pending value for date and restarts its debounce.
func (o *Outbox) Enqueue(date journal.Date, data journal.DailyData) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending[date] = data.Clone()
	if o.debounce <= 0 {
		o.markReady(date)
		return
	}

	if t, ok := o.timers[date]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(o.debounce, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.timers[date] != t {
			return
		}
		delete(o.timers, date)
		o.markReady(date)
	})
	o.timers[date] = t
}

// Refresh replaces the pending value for date, if there is one, without
// touching its timing.
func (o *Outbox) Refresh(date journal.Date, data journal.DailyData) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.pending[date]; ok {
		o.pending[date] = data.Clone()
	}
}

// Unsent returns the value still waiting to be sent for date, if any.
func (o *Outbox) Unsent(date journal.Date) (journal.DailyData, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.pending[date]
	if !ok {
		return journal.DailyData{}, false
	}
	return data.Clone(), true
}

// Pending reports how many dates await sending.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Outbox) markReady(date journal.Date) {
	if !slices.Contains(o.ready, date) {
		o.ready = append(o.ready, date)
	}
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

// Run sends ready values until ctx is done. Values still pending at that
// point stay queued; call Flush first to send them.
func (o *Outbox) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.wake:
		}
		for {
			if _, ok := o.sendNext(ctx, true, nil); !ok {
				break
			}
		}
	}
}

// Flush tries once to send everything pending now, ignoring debounce.
// Failures are reported through onError and stay pending.
func (o *Outbox) Flush(ctx context.Context) error {
	tried := make(map[journal.Date]bool)
	for {
		date, ok := o.sendNext(ctx, false, tried)
		if !ok {
			return nil
		}
		tried[date] = true
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Exclusive runs fn while no send is in flight.
func (o *Outbox) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	o.sendMu.Lock()
	defer o.sendMu.Unlock()
	return fn(ctx)
}

// sendNext sends one value, skipping dates in skip, and reports the date it
// tried.
func (o *Outbox) sendNext(ctx context.Context, readyOnly bool, skip map[journal.Date]bool) (journal.Date, bool) {
	o.sendMu.Lock()
	defer o.sendMu.Unlock()

	o.mu.Lock()
	date, data, ok := o.take(readyOnly, skip)
	o.mu.Unlock()
	if !ok {
		return "", false
	}

	if err := o.send(ctx, date, data); err != nil {
		o.park(date, data)
		if o.onError != nil {
			o.onError(date, err)
		}
	}
	return date, true
}

// park puts back a value whose send failed, unless a newer one for the same
// date arrived meanwhile. It waits for the next Flush or Enqueue.
func (o *Outbox) park(date journal.Date, data journal.DailyData) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.pending[date]; !ok {
		o.pending[date] = data
	}
}

func (o *Outbox) take(readyOnly bool, skip map[journal.Date]bool) (journal.Date, journal.DailyData, bool) {
	for i := 0; i < len(o.ready); {
		date := o.ready[i]
		data, ok := o.pending[date]
		switch {
		case !ok:
			o.ready = slices.Delete(o.ready, i, i+1)
		case skip[date]:
			i++
		default:
			o.ready = slices.Delete(o.ready, i, i+1)
			o.drop(date)
			return date, data, true
		}
	}
	if readyOnly {
		return "", journal.DailyData{}, false
	}

	dates := make([]journal.Date, 0, len(o.pending))
	for d := range o.pending {
		if !skip[d] {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return "", journal.DailyData{}, false
	}
	slices.Sort(dates)
	date := dates[0]
	data := o.pending[date]
	o.drop(date)
	return date, data, true
}

func (o *Outbox) drop(date journal.Date) {
	delete(o.pending, date)
	o.ready = slices.DeleteFunc(o.ready, func(d journal.Date) bool { return d == date })
	if t, ok := o.timers[date]; ok {
		t.Stop()
		delete(o.timers, date)
	}
}
