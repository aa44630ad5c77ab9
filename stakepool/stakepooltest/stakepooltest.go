// Package stakepooltest builds raw stake-pool account buffers and serves
// them from an in-memory chain for tests
package stakepooltest

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/poolwatch/poolwatch/pkg/chain"
	"github.com/poolwatch/poolwatch/stakepool"
)

// Key returns a public key with every byte set to b
func Key(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

// Record returns an active validator-list record
func Record(vote solana.PublicKey, active, transient uint64) stakepool.ValidatorStakeInfo {
	return stakepool.ValidatorStakeInfo{
		VoteAccount:            vote,
		ActiveStakeLamports:    active,
		TransientStakeLamports: transient,
		Status:                 stakepool.StatusActive,
	}
}

// ValidatorListBuffer encodes records as a validator-list account
func ValidatorListBuffer(maxValidators uint32, records ...stakepool.ValidatorStakeInfo) []byte {
	buf := make([]byte, stakepool.ValidatorListHeaderSize, stakepool.ValidatorListHeaderSize+len(records)*stakepool.ValidatorRecordSize)
	buf[0] = stakepool.AccountTypeValidatorList
	binary.LittleEndian.PutUint32(buf[1:5], maxValidators)
	binary.LittleEndian.PutUint32(buf[5:9], uint32(len(records)))

	for _, r := range records {
		rec := make([]byte, stakepool.ValidatorRecordSize)
		binary.LittleEndian.PutUint64(rec[0:], r.ActiveStakeLamports)
		binary.LittleEndian.PutUint64(rec[8:], r.TransientStakeLamports)
		binary.LittleEndian.PutUint64(rec[16:], r.LastUpdateEpoch)
		binary.LittleEndian.PutUint64(rec[24:], r.TransientSeedSuffix)
		binary.LittleEndian.PutUint32(rec[36:], r.ValidatorSeedSuffix)
		rec[40] = byte(r.Status)
		copy(rec[41:], r.VoteAccount[:])
		buf = append(buf, rec...)
	}
	return buf
}

// VoteAccountBuffer encodes a 68-byte vote-account prefix
func VoteAccountBuffer(identity, voter solana.PublicKey) []byte {
	buf := make([]byte, 68)
	binary.LittleEndian.PutUint32(buf[0:4], 1)
	copy(buf[4:36], identity[:])
	copy(buf[36:68], voter[:])
	return buf
}

// StakePoolBuffer encodes a stake-pool account pointing at validatorList
func StakePoolBuffer(validatorList solana.PublicKey, totalLamports, lastUpdateEpoch uint64) []byte {
	buf := make([]byte, 611)
	buf[0] = stakepool.AccountTypeStakePool
	copy(buf[98:130], validatorList[:])
	binary.LittleEndian.PutUint64(buf[258:], totalLamports)
	binary.LittleEndian.PutUint64(buf[274:], lastUpdateEpoch)
	return buf
}

// Chain is an in-memory account reader. Accounts not in Data are
// reported as chain.ErrAccountNotFound unless Errs holds an error for them.
type Chain struct {
	Data map[solana.PublicKey][]byte
	Errs map[solana.PublicKey]error

	mu    sync.Mutex
	reads []solana.PublicKey
}

// NewChain returns a Chain serving a pool at pool whose validator list at
// list holds records
func NewChain(pool, list solana.PublicKey, records ...stakepool.ValidatorStakeInfo) *Chain {
	return &Chain{
		Data: map[solana.PublicKey][]byte{
			pool: StakePoolBuffer(list, 0, 0),
			list: ValidatorListBuffer(uint32(len(records)), records...),
		},
		Errs: map[solana.PublicKey]error{},
	}
}

func (c *Chain) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	c.mu.Lock()
	c.reads = append(c.reads, account)
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := c.Errs[account]; ok {
		return nil, err
	}
	data, ok := c.Data[account]
	if !ok {
		return nil, chain.ErrAccountNotFound
	}
	return data, nil
}

// Reads returns every account requested so far, in order
func (c *Chain) Reads() []solana.PublicKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]solana.PublicKey, len(c.reads))
	copy(out, c.reads)
	return out
}
