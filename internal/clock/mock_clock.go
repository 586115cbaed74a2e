package clock

import (
	"sort"
	"sync"
	"time"
)

// MockClock allows manual control of time for testing. Pending calls run
// synchronously inside Advance, in deadline order.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*MockTimer
}

// NewMockClock creates a MockClock starting at the given time.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.AfterFunc(d, func() { ch <- c.Now() })
	return ch
}

func (c *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTimer{clock: c, f: f, deadline: c.now.Add(d), pending: true}
	c.timers = append(c.timers, t)
	return t
}

// Pending returns the number of calls not yet fired or stopped.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if t.pending {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every call that became due.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*MockTimer
	kept := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case !t.pending:
		case !t.deadline.After(c.now):
			t.pending = false
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	c.timers = kept
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.f()
	}
}

// MockTimer implements Timer for MockClock.
type MockTimer struct {
	clock    *MockClock
	f        func()
	deadline time.Time
	pending  bool
}

func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.pending
	t.pending = false
	return was
}

func (t *MockTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.pending
	t.deadline = t.clock.now.Add(d)
	if !was {
		t.pending = true
		if !t.clock.tracked(t) {
			t.clock.timers = append(t.clock.timers, t)
		}
	}
	return was
}

// tracked reports whether t is still in the timer list, as a stopped timer
// stays there until the next Advance. Callers hold c.mu.
func (c *MockClock) tracked(t *MockTimer) bool {
	for _, other := range c.timers {
		if other == t {
			return true
		}
	}
	return false
}
