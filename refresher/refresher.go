package refresher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/poolwatch/poolwatch/pkg/stakewiz"
	"github.com/poolwatch/poolwatch/stakepool"
)

// Sentinel errors for failure cases
var (
	ErrMissingAccount   = stakepool.ErrMissingAccount
	ErrEnrichmentFailed = errors.New("enrichment lookup failed")
	ErrSnapshotFailed   = errors.New("snapshot write failed")
	ErrPublishFailed    = errors.New("cache publish failed")
	ErrInvalidPolicy    = errors.New("invalid policy")
	ErrKeyNotFound      = errors.New("cache key not found")
)

// Default configuration values
const (
	DefaultMinActiveStake = uint64(stakepool.LamportsPerSOL)
	DefaultLookupInterval = 2 * time.Second
	DefaultCacheKey       = "pool-data"
)

// StakeSource selects which figure becomes a record's CurrentStake
type StakeSource string

const (
	// StakeFromEnrichment uses the enrichment service's activated stake
	StakeFromEnrichment StakeSource = "enrichment"
	// StakeFromChain uses the validator list's active stake
	StakeFromChain StakeSource = "chain"
)

func (s *StakeSource) UnmarshalText(text []byte) error {
	switch v := StakeSource(text); v {
	case StakeFromEnrichment, StakeFromChain:
		*s = v
		return nil
	default:
		return fmt.Errorf("%w: stake source %q", ErrInvalidPolicy, text)
	}
}

// FailurePolicy decides what a failed enrichment lookup does to the run
type FailurePolicy string

const (
	// SkipOnError drops the validator and continues
	SkipOnError FailurePolicy = "skip"
	// AbortOnError fails the whole run
	AbortOnError FailurePolicy = "abort"
)

func (p *FailurePolicy) UnmarshalText(text []byte) error {
	switch v := FailurePolicy(text); v {
	case SkipOnError, AbortOnError:
		*p = v
		return nil
	default:
		return fmt.Errorf("%w: enrichment failure policy %q", ErrInvalidPolicy, text)
	}
}

// Chain reads raw account data
// ----------------------------
type Chain interface {
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
}

// Enricher looks up a validator profile by vote account
type Enricher interface {
	Validator(ctx context.Context, voteAccount string) (stakewiz.Validator, error)
}

// Store publishes the complete record set, replacing what was there before
type Store interface {
	Publish(ctx context.Context, records []CacheRecord) error
}

// Gate paces enrichment lookups
type Gate interface {
	Wait(ctx context.Context) error
}

// Clock abstracts time for production and testing
type Clock interface {
	Now() time.Time
}

// CacheRecord is one validator's entry in the published cache.
// CurrentStake follows the configured StakeSource; ChainActiveStake is
// always the validator list's figure.
type CacheRecord struct {
	ValidatorKeys          stakepool.ValidatorKeys `json:"validatorKeys"`
	Name                   string                  `json:"name"`
	Logo                   string                  `json:"logo"`
	CurrentStake           uint64                  `json:"currentStake"`
	ChainActiveStake       uint64                  `json:"chainActiveStake"`
	TransientStakeLamports uint64                  `json:"transientStakeLamports"`
}

// NewCacheRecord merges a correlated validator with its profile
func NewCacheRecord(m stakepool.Match, v stakewiz.Validator, source StakeSource) CacheRecord {
	current := v.ActivatedStakeLamports()
	if source == StakeFromChain {
		current = m.Stake.ActiveStakeLamports
	}

	return CacheRecord{
		ValidatorKeys: stakepool.ValidatorKeys{
			Identity:    m.Identity,
			VoteAccount: m.VoteAccount,
		},
		Name:                   v.Name,
		Logo:                   v.Image,
		CurrentStake:           current,
		ChainActiveStake:       m.Stake.ActiveStakeLamports,
		TransientStakeLamports: m.Stake.TransientStakeLamports,
	}
}

// Event represents a service lifecycle event
// ------------------------------------------
type Event any

type RefreshStarted struct {
	StartedAt     time.Time
	Pool          solana.PublicKey
	ValidatorList solana.PublicKey
	OnChain       int
	Inputs        int
}

// ValidatorUnmatched reports an input row whose vote account is not in the pool
type ValidatorUnmatched struct {
	Keys stakepool.ValidatorKeys
}

// ValidatorSkipped reports a match left out by the inclusion filter
type ValidatorSkipped struct {
	Match     stakepool.Match
	Threshold uint64
}

type ValidatorCached struct {
	Record CacheRecord
}

// ValidatorFailed reports an enrichment failure tolerated by SkipOnError
type ValidatorFailed struct {
	Match stakepool.Match
	Err   error
}

type RefreshDone struct {
	Records   int
	Skipped   int
	Unmatched int
	Failed    int
	Duration  time.Duration
}

type RefreshFailed struct {
	Err error
}
