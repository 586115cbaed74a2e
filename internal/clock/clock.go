package clock

import (
	"time"
)

// Clock abstracts time so debouncing can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending call created by AfterFunc.
type Timer interface {
	// Stop cancels the call. It reports whether the call was still pending.
	Stop() bool
	// Reset reschedules the call d from now. It reports whether the call was still pending.
	Reset(d time.Duration) bool
}

// RealClock implements Clock using the time package
type RealClock struct{}

func (RealClock) Now() time.Time                         { return time.Now() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
