// Package clock abstracts the timer operations used by the deferred flush.
// Pass a Fake to querysync.WithClock to drive the debounce window from tests.
package clock

import "time"

// Clock is the subset of the time package the synchronizer depends on.
// Production code injects Real(); tests inject Fake().
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f. The returned Timer
	// cancels the pending call with Stop.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer represents a scheduled callback.
type Timer struct {
	stopFunc func() bool
}

// NewTimer wraps a stop function for Clock implementations outside this
// package.
func NewTimer(stop func() bool) *Timer {
	return &Timer{stopFunc: stop}
}

// Stop prevents the Timer from firing. Returns true if the call stops the
// timer, false if the timer has already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
