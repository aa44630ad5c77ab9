package stakepool

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/poolwatch/poolwatch/pkg/chain"
)

// Sentinel errors for account reads
var (
	ErrMissingAccount = errors.New("account missing on chain")
	ErrReadAccount    = errors.New("account read failed")
)

// AccountReader returns the raw data of an on-chain account
type AccountReader interface {
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
}

// ReadAccount reads account through r, mapping an absent account to
// ErrMissingAccount
func ReadAccount(ctx context.Context, r AccountReader, name string, account solana.PublicKey) ([]byte, error) {
	data, err := r.AccountData(ctx, account)
	if errors.Is(err, chain.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %s %s", ErrMissingAccount, name, account)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrReadAccount, name, account, err)
	}
	return data, nil
}

// LoadValidatorList reads and decodes the stake pool at pool and the
// validator list it points to
func LoadValidatorList(ctx context.Context, r AccountReader, pool solana.PublicKey) (StakePool, ValidatorList, error) {
	data, err := ReadAccount(ctx, r, "stake pool", pool)
	if err != nil {
		return StakePool{}, ValidatorList{}, err
	}
	sp, err := DecodeStakePool(data)
	if err != nil {
		return StakePool{}, ValidatorList{}, err
	}

	data, err = ReadAccount(ctx, r, "validator list", sp.ValidatorList)
	if err != nil {
		return StakePool{}, ValidatorList{}, err
	}
	list, err := DecodeValidatorList(data)
	if err != nil {
		return StakePool{}, ValidatorList{}, err
	}
	return sp, list, nil
}
