package reconcile

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("event loop stopped")

// Scheduler runs a callback after the current batch of work completes.
type Scheduler interface {
	Defer(fn func())
}

// Loop executes posted functions one at a time on a single goroutine. It is
// the only place client state is mutated. The queue is unbounded so Post
// never blocks, including when called from the loop itself.
type Loop struct {
	mu       sync.Mutex
	queue    []func()
	wake     chan struct{}
	stopped  chan struct{}
	deferred []func()
}

var _ Scheduler = (*Loop)(nil)

func NewLoop() *Loop {
	return &Loop{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

// Run processes posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
		for {
			fn := l.pop()
			if fn == nil {
				break
			}
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	fn()
	for len(l.deferred) > 0 {
		batch := l.deferred
		l.deferred = nil
		for _, d := range batch {
			d()
		}
	}
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// Post queues fn. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Defer queues fn to run right after the function currently executing on
// the loop returns, before the next posted function. Only call it from the
// loop goroutine.
func (l *Loop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

// Do posts fn and waits for it to finish. Calling Do from the loop
// goroutine deadlocks.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	}
}
