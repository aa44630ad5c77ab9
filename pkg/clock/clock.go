// Package clock provides time abstractions for production and testing
package clock

import "time"

// Clock is the time source consumers depend on instead of the time package
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

var _ Clock = SystemClock{}

// After waits for d on the wall clock and then sends the current time
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Now returns the wall-clock time
func (SystemClock) Now() time.Time {
	return time.Now()
}
