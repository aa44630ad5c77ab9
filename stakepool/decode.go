package stakepool

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrDecode is wrapped by every decoding failure in this package
var ErrDecode = errors.New("account decode failed")

// Account type discriminators written by the stake-pool program
const (
	AccountTypeUninitialized = uint8(0)
	AccountTypeStakePool     = uint8(1)
	AccountTypeValidatorList = uint8(2)
)

// Validator-list layout
//
//	0   u8   account type (AccountTypeValidatorList)
//	1   u32  max validators
//	5   u32  validator count
//	9   [count]record, 73 bytes each
//
// Record layout, relative to the record start
//
//	0   u64  active stake lamports
//	8   u64  transient stake lamports
//	16  u64  last update epoch
//	24  u64  transient seed suffix
//	32  u32  unused
//	36  u32  validator seed suffix
//	40  u8   status
//	41  [32] vote account address
const (
	ValidatorListHeaderSize = 9
	ValidatorRecordSize     = 73

	recordActiveStakeOffset    = 0
	recordTransientStakeOffset = 8
	recordLastUpdateOffset     = 16
	recordTransientSeedOffset  = 24
	recordValidatorSeedOffset  = 36
	recordStatusOffset         = 40
	recordVoteAccountOffset    = 41
)

// Vote-account layout
//
//	0   u32  version (ignored)
//	4   [32] node identity
//	36  [32] authorized voter (unused)
const (
	voteIdentityOffset  = 4
	VoteAccountMinSize  = 36
	voteAuthorizedVoter = 36
)

// Stake-pool layout, only the prefix that is read
//
//	0    u8   account type (AccountTypeStakePool)
//	1    [32] manager
//	33   [32] staker
//	65   [32] stake deposit authority
//	97   u8   stake withdraw bump seed
//	98   [32] validator list
//	130  [32] reserve stake
//	162  [32] pool mint
//	194  [32] manager fee account
//	226  [32] token program
//	258  u64  total lamports
//	266  u64  pool token supply
//	274  u64  last update epoch
const (
	stakePoolManagerOffset       = 1
	stakePoolStakerOffset        = 33
	stakePoolValidatorListOffset = 98
	stakePoolReserveOffset       = 130
	stakePoolMintOffset          = 162
	stakePoolTotalLamportsOffset = 258
	stakePoolTokenSupplyOffset   = 266
	stakePoolLastUpdateOffset    = 274
	StakePoolMinSize             = 282
)

// DecodeError describes where a buffer failed to decode
type DecodeError struct {
	Account string
	Offset  int
	Length  int
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %s (offset %d, buffer length %d)", ErrDecode, e.Account, e.Reason, e.Offset, e.Length)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

func decodeErr(account string, buf []byte, offset int, format string, args ...any) error {
	return &DecodeError{
		Account: account,
		Offset:  offset,
		Length:  len(buf),
		Reason:  fmt.Sprintf(format, args...),
	}
}

// DecodeValidatorList decodes a raw validator-list account.
// Either every record decodes or an error is returned; there is no partial result.
func DecodeValidatorList(buf []byte) (ValidatorList, error) {
	const account = "validator list"

	if len(buf) < ValidatorListHeaderSize {
		return ValidatorList{}, decodeErr(account, buf, 0, "buffer shorter than %d byte header", ValidatorListHeaderSize)
	}

	if buf[0] != AccountTypeValidatorList {
		return ValidatorList{}, decodeErr(account, buf, 0, "unexpected account type %d", buf[0])
	}

	maxValidators := binary.LittleEndian.Uint32(buf[1:5])
	count := binary.LittleEndian.Uint32(buf[5:9])
	if count > maxValidators {
		return ValidatorList{}, decodeErr(account, buf, 5, "validator count %d exceeds max validators %d", count, maxValidators)
	}

	need := uint64(ValidatorListHeaderSize) + uint64(count)*ValidatorRecordSize
	if uint64(len(buf)) < need {
		return ValidatorList{}, decodeErr(account, buf, len(buf), "truncated: %d validators need %d bytes", count, need)
	}

	validators := make([]ValidatorStakeInfo, count)
	for i := range validators {
		offset := ValidatorListHeaderSize + i*ValidatorRecordSize
		info, err := decodeValidatorRecord(buf, offset)
		if err != nil {
			return ValidatorList{}, err
		}
		validators[i] = info
	}

	return ValidatorList{
		MaxValidators: maxValidators,
		Validators:    validators,
	}, nil
}

func decodeValidatorRecord(buf []byte, offset int) (ValidatorStakeInfo, error) {
	rec := buf[offset : offset+ValidatorRecordSize]

	status := ValidatorStatus(rec[recordStatusOffset])
	if !status.Valid() {
		return ValidatorStakeInfo{}, decodeErr("validator list", buf, offset+recordStatusOffset, "unknown validator status %d", status)
	}

	var vote solana.PublicKey
	copy(vote[:], rec[recordVoteAccountOffset:recordVoteAccountOffset+solana.PublicKeyLength])

	return ValidatorStakeInfo{
		VoteAccount:            vote,
		ActiveStakeLamports:    binary.LittleEndian.Uint64(rec[recordActiveStakeOffset:]),
		TransientStakeLamports: binary.LittleEndian.Uint64(rec[recordTransientStakeOffset:]),
		LastUpdateEpoch:        binary.LittleEndian.Uint64(rec[recordLastUpdateOffset:]),
		TransientSeedSuffix:    binary.LittleEndian.Uint64(rec[recordTransientSeedOffset:]),
		ValidatorSeedSuffix:    binary.LittleEndian.Uint32(rec[recordValidatorSeedOffset:]),
		Status:                 status,
	}, nil
}

// DecodeVoteAccount returns the node identity embedded in a vote account.
// The authorized voter and everything after it is ignored.
func DecodeVoteAccount(buf []byte) (solana.PublicKey, error) {
	if len(buf) < VoteAccountMinSize {
		return solana.PublicKey{}, decodeErr("vote account", buf, 0, "buffer shorter than %d bytes", VoteAccountMinSize)
	}

	var identity solana.PublicKey
	copy(identity[:], buf[voteIdentityOffset:voteAuthorizedVoter])
	return identity, nil
}

// DecodeStakePool decodes the stake-pool account prefix
func DecodeStakePool(buf []byte) (StakePool, error) {
	const account = "stake pool"

	if len(buf) < StakePoolMinSize {
		return StakePool{}, decodeErr(account, buf, 0, "buffer shorter than %d bytes", StakePoolMinSize)
	}
	if buf[0] != AccountTypeStakePool {
		return StakePool{}, decodeErr(account, buf, 0, "unexpected account type %d", buf[0])
	}

	return StakePool{
		Manager:         readKey(buf, stakePoolManagerOffset),
		Staker:          readKey(buf, stakePoolStakerOffset),
		ValidatorList:   readKey(buf, stakePoolValidatorListOffset),
		ReserveStake:    readKey(buf, stakePoolReserveOffset),
		PoolMint:        readKey(buf, stakePoolMintOffset),
		TotalLamports:   binary.LittleEndian.Uint64(buf[stakePoolTotalLamportsOffset:]),
		PoolTokenSupply: binary.LittleEndian.Uint64(buf[stakePoolTokenSupplyOffset:]),
		LastUpdateEpoch: binary.LittleEndian.Uint64(buf[stakePoolLastUpdateOffset:]),
	}, nil
}

func readKey(buf []byte, offset int) solana.PublicKey {
	var key solana.PublicKey
	copy(key[:], buf[offset:offset+solana.PublicKeyLength])
	return key
}
