package refresher

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/poolwatch/poolwatch/pkg/clock"
	"github.com/poolwatch/poolwatch/pkg/ratelimit"
	"github.com/poolwatch/poolwatch/stakepool"
)

// Option configures the Service
// ------------------------------------------------
type Option func(*Service)

// WithClock injects a custom Clock (e.g., for testing)
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithGate replaces the default fixed-interval gate
func WithGate(g Gate) Option {
	return func(s *Service) { s.gate = g }
}

// WithMinActiveStake sets the inclusion threshold in lamports; 0 disables it
func WithMinActiveStake(lamports uint64) Option {
	return func(s *Service) { s.minActiveStake = lamports }
}

// WithStakeSource sets which figure becomes CurrentStake
func WithStakeSource(src StakeSource) Option {
	return func(s *Service) { s.stakeSource = src }
}

// WithFailurePolicy sets how enrichment failures affect the run
func WithFailurePolicy(p FailurePolicy) Option {
	return func(s *Service) { s.onError = p }
}

// Service rebuilds the pool's validator cache in one pass
// -------------------------------------------------------
type Service struct {
	chain          Chain
	enricher       Enricher
	store          Store
	pool           solana.PublicKey
	gate           Gate
	clock          Clock
	minActiveStake uint64
	stakeSource    StakeSource
	onError        FailurePolicy
	events         chan Event
}

// NewService constructs a Service for the stake pool at pool.
// By default, it uses a real clock, a 2s lookup gate, a 1 SOL inclusion
// threshold, enrichment stake and skip-on-error.
func NewService(chain Chain, enricher Enricher, store Store, pool solana.PublicKey, opts ...Option) *Service {
	s := &Service{
		chain:          chain,
		enricher:       enricher,
		store:          store,
		pool:           pool,
		clock:          clock.SystemClock{},
		minActiveStake: DefaultMinActiveStake,
		stakeSource:    StakeFromEnrichment,
		onError:        SkipOnError,
		events:         make(chan Event, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gate == nil {
		s.gate = ratelimit.NewFixedInterval(clock.SystemClock{}, DefaultLookupInterval)
	}
	return s
}

// Start runs one refresh over keys and returns the events channel and done
// channel. The events channel is closed after RefreshDone or RefreshFailed.
//
// Example:
//
//	events, done := service.Start(ctx, keys)
//	closer := refresher.NewSubscriber(events, ...)
//	<-done
//	closer()
func (s *Service) Start(ctx context.Context, keys []stakepool.ValidatorKeys) (<-chan Event, <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		defer close(s.events)
		defer close(done)
		s.run(ctx, keys)
	}()
	return s.events, done
}

func (s *Service) run(ctx context.Context, keys []stakepool.ValidatorKeys) {
	start := s.clock.Now()

	sp, list, err := stakepool.LoadValidatorList(ctx, s.chain, s.pool)
	if err != nil {
		s.events <- RefreshFailed{Err: err}
		return
	}

	s.events <- RefreshStarted{
		StartedAt:     start,
		Pool:          s.pool,
		ValidatorList: sp.ValidatorList,
		OnChain:       len(list.Validators),
		Inputs:        len(keys),
	}

	correlation := stakepool.Correlate(list.Validators, keys)
	for _, k := range correlation.Unmatched {
		s.events <- ValidatorUnmatched{Keys: k}
	}

	records := make([]CacheRecord, 0, len(correlation.Matches))
	var skipped, failed int
	for _, m := range correlation.Matches {
		if s.minActiveStake > 0 && m.Stake.ActiveStakeLamports < s.minActiveStake {
			skipped++
			s.events <- ValidatorSkipped{Match: m, Threshold: s.minActiveStake}
			continue
		}

		rec, err := s.enrich(ctx, m)
		if err != nil {
			if ctx.Err() != nil || s.onError == AbortOnError {
				s.events <- RefreshFailed{Err: err}
				return
			}
			failed++
			s.events <- ValidatorFailed{Match: m, Err: err}
			continue
		}

		records = append(records, rec)
		s.events <- ValidatorCached{Record: rec}
	}

	if err := s.store.Publish(ctx, records); err != nil {
		s.events <- RefreshFailed{Err: err}
		return
	}

	s.events <- RefreshDone{
		Records:   len(records),
		Skipped:   skipped,
		Unmatched: len(correlation.Unmatched),
		Failed:    failed,
		Duration:  s.clock.Now().Sub(start),
	}
}

// enrich waits for the gate and looks the match up
func (s *Service) enrich(ctx context.Context, m stakepool.Match) (CacheRecord, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return CacheRecord{}, err
	}

	// the on-chain key, not the caller's spelling of it
	vote := m.Stake.VoteAccount.String()
	v, err := s.enricher.Validator(ctx, vote)
	if err != nil {
		return CacheRecord{}, fmt.Errorf("%w: %s: %w", ErrEnrichmentFailed, vote, err)
	}
	return NewCacheRecord(m, v, s.stakeSource), nil
}
