package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualPostRunsOnFlush(t *testing.T) {
	m := NewManual()

	var ran int
	m.Post(func() { ran++ })
	assert.Equal(t, 0, ran, "nothing runs before Flush")

	m.Flush()
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, m.Pending())
}

func TestManualAfterFiresInDueOrder(t *testing.T) {
	m := NewManual()

	var order []string
	m.After(20*time.Millisecond, func() { order = append(order, "b") })
	m.After(10*time.Millisecond, func() { order = append(order, "a") })
	m.After(30*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)

	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManualTiesRunInInsertionOrder(t *testing.T) {
	m := NewManual()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		m.After(time.Second, func() { order = append(order, i) })
	}
	m.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestManualCancelledTimerNeverFires(t *testing.T) {
	m := NewManual()

	var ran bool
	timer := m.After(time.Second, func() { ran = true })
	assert.True(t, timer.Cancel())
	assert.False(t, timer.Cancel(), "second cancel reports false")

	m.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestManualCancelAfterFireReturnsFalse(t *testing.T) {
	m := NewManual()

	timer := m.After(time.Second, func() {})
	m.Advance(time.Second)
	assert.False(t, timer.Cancel())
}

func TestManualCallbackSchedulesWithinWindow(t *testing.T) {
	m := NewManual()

	var order []string
	m.After(10*time.Millisecond, func() {
		order = append(order, "outer")
		m.After(10*time.Millisecond, func() { order = append(order, "inner") })
	})

	// The inner callback comes due inside the advanced window, so one
	// Advance runs both.
	m.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestManualClockAdvancesThroughDueTimes(t *testing.T) {
	m := NewManual()
	start := m.Now()

	var seen time.Time
	m.After(10*time.Millisecond, func() { seen = m.Now() })
	m.Advance(time.Minute)

	assert.Equal(t, start.Add(10*time.Millisecond), seen, "callback observes its due time")
	assert.Equal(t, start.Add(time.Minute), m.Now())
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	m := NewManual()
	d := NewDebouncer(m, 50*time.Millisecond)

	var got int
	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() { got = i })
		m.Advance(10 * time.Millisecond)
	}
	assert.Equal(t, 0, got, "window still open")

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, 5, got, "only the last trigger runs")
}

func TestDebouncerCancel(t *testing.T) {
	m := NewManual()
	d := NewDebouncer(m, 50*time.Millisecond)

	var ran bool
	d.Trigger(func() { ran = true })
	d.Cancel()
	m.Advance(time.Second)
	assert.False(t, ran)
}

func TestLoopRunsPostedTasks(t *testing.T) {
	l := NewLoop(DefaultLoopConfig)
	defer l.Close()

	done := make(chan struct{})
	var count atomic.Int64
	for i := 0; i < 10; i++ {
		l.Post(func() { count.Add(1) })
	}
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain posted tasks")
	}
	assert.Equal(t, int64(10), count.Load())
}

func TestLoopAfterFires(t *testing.T) {
	l := NewLoop(DefaultLoopConfig)
	defer l.Close()

	done := make(chan struct{})
	l.After(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopAfterCancel(t *testing.T) {
	l := NewLoop(DefaultLoopConfig)
	defer l.Close()

	var fired atomic.Bool
	timer := l.After(50*time.Millisecond, func() { fired.Store(true) })
	require.True(t, timer.Cancel())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestLoopCloseIsIdempotent(t *testing.T) {
	l := NewLoop(LoopConfig{QueueSize: 4})
	l.Close()
	l.Close()

	// Posting after close is a silent no-op.
	l.Post(func() { t.Error("task ran after close") })
	time.Sleep(20 * time.Millisecond)
}
