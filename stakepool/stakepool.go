// Package stakepool decodes SPL stake-pool accounts and correlates the
// pool's validators with externally supplied identity records.
package stakepool

import (
	"github.com/gagliardetto/solana-go"
)

// LamportsPerSOL is the number of lamports in one SOL
const LamportsPerSOL = 1_000_000_000

// ValidatorStatus is the stake status of a validator inside the pool
type ValidatorStatus uint8

const (
	StatusActive ValidatorStatus = iota
	StatusDeactivatingTransient
	StatusReadyForRemoval
	StatusDeactivatingValidator
	StatusDeactivatingAll
)

// Valid reports whether s is a status the program can write
func (s ValidatorStatus) Valid() bool {
	return s <= StatusDeactivatingAll
}

func (s ValidatorStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeactivatingTransient:
		return "deactivating_transient"
	case StatusReadyForRemoval:
		return "ready_for_removal"
	case StatusDeactivatingValidator:
		return "deactivating_validator"
	case StatusDeactivatingAll:
		return "deactivating_all"
	default:
		return "unknown"
	}
}

// ValidatorStakeInfo is one decoded validator-list record
type ValidatorStakeInfo struct {
	VoteAccount            solana.PublicKey
	ActiveStakeLamports    uint64
	TransientStakeLamports uint64
	LastUpdateEpoch        uint64
	TransientSeedSuffix    uint64
	ValidatorSeedSuffix    uint32
	Status                 ValidatorStatus
}

// ValidatorList is a decoded validator-list account
type ValidatorList struct {
	MaxValidators uint32
	Validators    []ValidatorStakeInfo
}

// StakePool holds the stake-pool account fields this module reads
type StakePool struct {
	Manager         solana.PublicKey
	Staker          solana.PublicKey
	ValidatorList   solana.PublicKey
	ReserveStake    solana.PublicKey
	PoolMint        solana.PublicKey
	TotalLamports   uint64
	PoolTokenSupply uint64
	LastUpdateEpoch uint64
}

// ValidatorKeys pairs a validator identity with its vote account,
// both in base58 text form
type ValidatorKeys struct {
	Identity    string `json:"identity"`
	VoteAccount string `json:"voteAccount"`
}

// Match is a caller-supplied key pair joined with its on-chain record
type Match struct {
	Identity    string
	VoteAccount string
	Stake       ValidatorStakeInfo
}
