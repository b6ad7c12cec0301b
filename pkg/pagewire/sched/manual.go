package sched

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing runs until the
// caller advances time or flushes the queue, which makes every timer in
// the behavior layer deterministic under test.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue []*manualTimer
}

// NewManual creates a manual scheduler. The clock starts at a fixed,
// arbitrary epoch so durations subtract cleanly.
func NewManual() *Manual {
	return &Manual{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Post enqueues fn to run at the current virtual time. It runs on the
// next Flush or Advance call.
func (m *Manual) Post(fn func()) {
	m.schedule(0, fn)
}

// After schedules fn to run once the virtual clock has advanced by d.
func (m *Manual) After(d time.Duration, fn func()) Timer {
	return m.schedule(d, fn)
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the virtual clock forward by d and runs every callback
// that comes due, in due order (insertion order on ties). Callbacks may
// schedule further work; anything they make due within the advanced
// window runs too.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	if target.After(m.now) {
		m.now = target
	}
	m.mu.Unlock()
}

// Flush runs everything already due without moving the clock.
func (m *Manual) Flush() {
	m.Advance(0)
}

// Pending reports how many callbacks are queued.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *Manual) schedule(d time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		owner: m,
		due:   m.now.Add(d),
		seq:   m.seq,
		fn:    fn,
	}
	m.queue = append(m.queue, t)
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due.Equal(m.queue[j].due) {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due.Before(m.queue[j].due)
	})
	return t
}

// popDue removes and returns the earliest callback due at or before
// target, advancing the clock to its due time. Returns nil when nothing
// qualifies.
func (m *Manual) popDue(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil
	}
	t := m.queue[0]
	if t.due.After(target) {
		return nil
	}
	m.queue = m.queue[1:]
	t.fired = true
	if t.due.After(m.now) {
		m.now = t.due
	}
	return t
}

func (m *Manual) remove(t *manualTimer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	for i, q := range m.queue {
		if q == t {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			break
		}
	}
	return true
}

// manualTimer is the Timer for Manual schedules.
type manualTimer struct {
	owner     *Manual
	due       time.Time
	seq       uint64
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel implements Timer.
func (t *manualTimer) Cancel() bool {
	return t.owner.remove(t)
}

var _ Scheduler = (*Manual)(nil)
