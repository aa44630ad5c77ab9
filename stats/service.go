package stats

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of identities processed at once
const DefaultConcurrency = 8

// Option configures the Service
type Option func(*Service)

// WithConcurrency bounds the number of identities fetched at once
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Service computes IdentityStats for a list of identities
type Service struct {
	fetcher     Fetcher
	schedule    Schedule
	concurrency int
}

// NewService constructs a Service with required dependencies and options
func NewService(fetcher Fetcher, schedule Schedule, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		schedule:    schedule,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type indexed struct {
	pos   int
	stats IdentityStats
}

// Compute runs every identity as an independent task and returns the results
// in the order of identities, regardless of completion order.
// It fails when ctx is done before every task has finished.
func (s *Service) Compute(ctx context.Context, identities []string) ([]IdentityStats, error) {
	results := make(chan indexed, len(identities))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, identity := range identities {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return nil, err
		}

		g.Go(func() error {
			fetched := s.fetcher.Fetch(ctx, identity)
			results <- indexed{pos: i, stats: s.schedule.Evaluate(identity, fetched)}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	// fetches cut short by cancellation look like empty answers
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]IdentityStats, len(identities))
	for r := range results {
		out[r.pos] = r.stats
	}
	return out, nil
}
