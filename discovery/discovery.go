// Package discovery lists the validators of a stake pool together with
// the node identity behind each vote account
package discovery

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/poolwatch/poolwatch/stakepool"
)

// ErrMissingAccount is returned when the pool or its validator list is absent
var ErrMissingAccount = stakepool.ErrMissingAccount

// Chain reads raw account data
type Chain interface {
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
}

// Result is the outcome of one discovery pass
type Result struct {
	// Keys holds one row per validator whose vote account exists, in
	// validator-list order
	Keys []stakepool.ValidatorKeys
	// Missing holds vote accounts listed by the pool but absent on chain
	Missing []solana.PublicKey
}

// Service discovers identity/vote-account rows for one pool
type Service struct {
	chain Chain
	pool  solana.PublicKey
}

// NewService constructs a Service for the stake pool at pool
func NewService(chain Chain, pool solana.PublicKey) *Service {
	return &Service{chain: chain, pool: pool}
}

// Discover reads the validator list and resolves every vote account to its
// identity. Vote accounts that no longer exist are reported in Missing;
// any other read or decode failure aborts the pass.
func (s *Service) Discover(ctx context.Context) (Result, error) {
	_, list, err := stakepool.LoadValidatorList(ctx, s.chain, s.pool)
	if err != nil {
		return Result{}, err
	}

	res := Result{Keys: make([]stakepool.ValidatorKeys, 0, len(list.Validators))}
	for _, v := range list.Validators {
		data, err := stakepool.ReadAccount(ctx, s.chain, "vote account", v.VoteAccount)
		if errors.Is(err, stakepool.ErrMissingAccount) {
			res.Missing = append(res.Missing, v.VoteAccount)
			continue
		}
		if err != nil {
			return Result{}, err
		}

		identity, err := stakepool.DecodeVoteAccount(data)
		if err != nil {
			return Result{}, err
		}

		res.Keys = append(res.Keys, stakepool.ValidatorKeys{
			Identity:    identity.String(),
			VoteAccount: v.VoteAccount.String(),
		})
	}
	return res, nil
}
