package clock

import (
	"testing"
	"time"
)

func TestRealClock_NowAndAfter(t *testing.T) {
	clk := RealClock{}
	before := time.Now()
	now := clk.Now()
	after := clk.After(10 * time.Millisecond)
	select {
	case <-after:
		// ok
	case <-time.After(500 * time.Millisecond):
		t.Error("RealClock.After did not fire within expected time")
	}
	if now.Before(before) || now.After(time.Now()) {
		t.Errorf("RealClock.Now returned unexpected time: %v", now)
	}
}

func TestRealClock_AfterFunc(t *testing.T) {
	clk := RealClock{}
	fired := make(chan struct{})
	clk.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Error("RealClock.AfterFunc did not fire within expected time")
	}

	stopped := clk.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	if !stopped.Stop() {
		t.Error("Stop() = false for pending timer")
	}
}

func TestMockClock_AfterFuncFiresOnAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)
	var order []string
	clk.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	clk.AfterFunc(time.Second, func() { order = append(order, "a") })

	clk.Advance(500 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("fired early: %v", order)
	}
	if clk.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", clk.Pending())
	}

	clk.Advance(2 * time.Second)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
	if clk.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clk.Pending())
	}
	if got := clk.Now(); !got.Equal(start.Add(2500 * time.Millisecond)) {
		t.Errorf("Now() = %v", got)
	}
}

func TestMockTimer_StopAndReset(t *testing.T) {
	clk := NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	calls := 0
	timer := clk.AfterFunc(time.Second, func() { calls++ })

	clk.Advance(900 * time.Millisecond)
	if !timer.Reset(time.Second) {
		t.Error("Reset() = false for pending timer")
	}
	clk.Advance(900 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("reset timer fired early")
	}
	clk.Advance(100 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	if timer.Stop() {
		t.Error("Stop() = true for fired timer")
	}
	if timer.Reset(time.Second) {
		t.Error("Reset() = true for fired timer")
	}
	clk.Advance(time.Second)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 after re-arming", calls)
	}

	timer.Reset(time.Second)
	timer.Stop()
	clk.Advance(time.Hour)
	if calls != 2 {
		t.Errorf("stopped timer fired, calls = %d", calls)
	}
}

func TestMockClock_After(t *testing.T) {
	clk := NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ch := clk.After(time.Minute)
	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}
	clk.Advance(time.Minute)
	select {
	case <-ch:
	default:
		t.Error("After did not fire after Advance")
	}
}

func TestMockTimer_ResetAfterStopCountsOnce(t *testing.T) {
	clk := NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	calls := 0
	timer := clk.AfterFunc(time.Second, func() { calls++ })

	timer.Stop()
	timer.Reset(time.Second)
	if got := clk.Pending(); got != 1 {
		t.Fatalf("Pending() = %d, want 1", got)
	}
	clk.Advance(time.Second)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
