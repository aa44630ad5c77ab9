// Package clocktest provides a Clock that never sleeps
package clocktest

import (
	"sync"
	"time"
)

// Fake is a clock whose After fires immediately and advances Now by the
// requested duration. Every requested duration is recorded.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	waited []time.Duration
}

// New returns a Fake starting at start
func New(start time.Time) *Fake {
	return &Fake{now: start}
}

// After advances the clock by d and returns an already fired channel
func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.waited = append(f.waited, d)
	f.now = f.now.Add(d)

	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

// Now returns the current fake time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Waited returns every duration passed to After, in call order
func (f *Fake) Waited() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]time.Duration, len(f.waited))
	copy(out, f.waited)
	return out
}
