// Package sched provides the deferred-callback queue the behavior layer
// runs on.
//
// The layer is single-threaded and cooperative: every handler runs to
// completion before the next queued callback runs, and "waiting" is always
// a scheduled callback, never a blocking wait. Scheduler is the one
// abstraction over that queue. Loop drains it on a real goroutine with
// real timers; Manual drives it with a virtual clock for deterministic
// tests.
package sched

import (
	"sync/atomic"
	"time"
)

// Scheduler queues work for later execution on a single logical thread.
type Scheduler interface {
	// Post enqueues fn to run as soon as the queue drains to it.
	Post(fn func())

	// After schedules fn to run once d has elapsed.
	// The returned timer can cancel the callback before it fires.
	After(d time.Duration, fn func()) Timer

	// Now returns the scheduler's current time.
	Now() time.Time
}

// Timer is a handle to a pending After callback.
type Timer interface {
	// Cancel stops the callback from running.
	// Returns false if it already fired or was cancelled.
	Cancel() bool
}

// LoopConfig configures loop behavior.
type LoopConfig struct {
	// QueueSize is the pending-task channel buffer.
	// Default: 128
	QueueSize int
}

// DefaultLoopConfig provides reasonable defaults.
var DefaultLoopConfig = LoopConfig{
	QueueSize: 128,
}

// Loop is a Scheduler backed by one goroutine and wall-clock timers.
// Posted tasks and fired timer callbacks are interleaved on that single
// goroutine, which is what gives the layer its ordering guarantees.
type Loop struct {
	tasks   chan func()
	closed  atomic.Bool
	closeCh chan struct{}
	done    chan struct{}
}

// NewLoop creates a running loop. Call Close to stop it.
func NewLoop(config LoopConfig) *Loop {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultLoopConfig.QueueSize
	}

	l := &Loop{
		tasks:   make(chan func(), config.QueueSize),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.closeCh:
			// Drain whatever was already queued, then stop.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Post enqueues fn on the loop. Tasks posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.tasks <- fn:
	case <-l.closeCh:
	}
}

// After schedules fn on the loop goroutine once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		// The wall-clock timer fires on its own goroutine; hop onto the
		// loop so the callback observes single-threaded ordering.
		l.Post(func() {
			if t.consumed.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Close stops the loop after draining already-queued tasks.
// Close is idempotent.
func (l *Loop) Close() {
	if !l.closed.CompareAndSwap(false, true) {
		return
	}
	close(l.closeCh)
	<-l.done
}

// loopTimer is the Timer for Loop.After.
type loopTimer struct {
	timer    *time.Timer
	consumed atomic.Bool
}

// Cancel implements Timer. The consumed flag closes the window where the
// wall-clock timer fired but the posted callback has not yet run.
func (t *loopTimer) Cancel() bool {
	if !t.consumed.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}

// Debouncer coalesces a burst of triggers into one trailing callback.
// It is not safe for concurrent use; like the rest of the layer it is
// driven from a single scheduler.
type Debouncer struct {
	s       Scheduler
	delay   time.Duration
	pending Timer
}

// NewDebouncer creates a debouncer with the given trailing delay.
func NewDebouncer(s Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{s: s, delay: delay}
}

// Trigger arms (or re-arms) the debouncer with fn. Only the fn from the
// last Trigger inside the window runs.
func (d *Debouncer) Trigger(fn func()) {
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.pending = d.s.After(d.delay, func() {
		d.pending = nil
		fn()
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

var _ Scheduler = (*Loop)(nil)
