// Package ratelimit paces calls to external APIs
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/poolwatch/poolwatch/pkg/clock"
)

// Gate is passed before every paced call
type Gate interface {
	Wait(ctx context.Context) error
}

// FixedInterval waits the full interval before every call except the first.
// The delay is not adjusted for how long the previous call took.
type FixedInterval struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	primed   bool
}

// NewFixedInterval creates a gate with the given interval on c
func NewFixedInterval(c clock.Clock, interval time.Duration) *FixedInterval {
	if c == nil {
		c = clock.SystemClock{}
	}
	return &FixedInterval{clock: c, interval: interval}
}

// Wait blocks for the interval unless this is the first call.
// It returns ctx.Err() if ctx is done first.
func (g *FixedInterval) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if !g.primed || g.interval <= 0 {
		g.primed = true
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.clock.After(g.interval):
		return nil
	}
}

// Unlimited never waits
type Unlimited struct{}

// Wait returns ctx.Err() and nothing else
func (Unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}
