// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() or time.Sleep() directly, code can use the Clock
// interface which can be mocked in tests to control time-dependent behavior.
package clock

import "time"

// Clock is an interface for time operations.
// This allows code such as lock acquisition poll loops to be tested with
// mock clocks instead of real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses the calling goroutine for the given duration.
	Sleep(d time.Duration)
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep calls time.Sleep.
func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}
