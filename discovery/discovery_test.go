package discovery_test

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/discovery"
	"github.com/poolwatch/poolwatch/stakepool"
	"github.com/poolwatch/poolwatch/stakepool/stakepooltest"
)

var (
	poolAddr = stakepooltest.Key(0xA0)
	listAddr = stakepooltest.Key(0xB0)
)

func TestServiceDiscover(t *testing.T) {
	t.Parallel()

	t.Run("it resolves every vote account to its identity in list order", func(t *testing.T) {
		t.Parallel()

		// Arrange
		voteA, voteB := stakepooltest.Key(1), stakepooltest.Key(2)
		idA, idB := stakepooltest.Key(11), stakepooltest.Key(12)
		chain := stakepooltest.NewChain(poolAddr, listAddr,
			stakepooltest.Record(voteB, 1, 0),
			stakepooltest.Record(voteA, 1, 0),
		)
		chain.Data[voteA] = stakepooltest.VoteAccountBuffer(idA, stakepooltest.Key(99))
		chain.Data[voteB] = stakepooltest.VoteAccountBuffer(idB, stakepooltest.Key(99))

		svc := discovery.NewService(chain, poolAddr)

		// Act
		res, err := svc.Discover(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []stakepool.ValidatorKeys{
			{Identity: idB.String(), VoteAccount: voteB.String()},
			{Identity: idA.String(), VoteAccount: voteA.String()},
		}, res.Keys)
		assert.Empty(t, res.Missing)
	})

	t.Run("it skips vote accounts that no longer exist", func(t *testing.T) {
		t.Parallel()

		// Arrange
		voteA, voteGone := stakepooltest.Key(1), stakepooltest.Key(2)
		chain := stakepooltest.NewChain(poolAddr, listAddr,
			stakepooltest.Record(voteGone, 1, 0),
			stakepooltest.Record(voteA, 1, 0),
		)
		chain.Data[voteA] = stakepooltest.VoteAccountBuffer(stakepooltest.Key(11), stakepooltest.Key(99))

		svc := discovery.NewService(chain, poolAddr)

		// Act
		res, err := svc.Discover(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, res.Keys, 1)
		assert.Equal(t, voteA.String(), res.Keys[0].VoteAccount)
		assert.Equal(t, []solana.PublicKey{voteGone}, res.Missing)
	})

	t.Run("it fails on a malformed vote account", func(t *testing.T) {
		t.Parallel()

		// Arrange
		vote := stakepooltest.Key(1)
		chain := stakepooltest.NewChain(poolAddr, listAddr, stakepooltest.Record(vote, 1, 0))
		chain.Data[vote] = make([]byte, stakepool.VoteAccountMinSize-1)

		svc := discovery.NewService(chain, poolAddr)

		// Act
		res, err := svc.Discover(t.Context())

		// Assert
		assert.ErrorIs(t, err, stakepool.ErrDecode)
		assert.Empty(t, res.Keys)
	})

	t.Run("it fails when the stake pool is missing", func(t *testing.T) {
		t.Parallel()

		// Arrange
		chain := stakepooltest.NewChain(poolAddr, listAddr)
		delete(chain.Data, poolAddr)

		svc := discovery.NewService(chain, poolAddr)

		// Act
		_, err := svc.Discover(t.Context())

		// Assert
		assert.ErrorIs(t, err, discovery.ErrMissingAccount)
	})

	t.Run("it fails on a read error other than a missing account", func(t *testing.T) {
		t.Parallel()

		// Arrange
		vote := stakepooltest.Key(1)
		chain := stakepooltest.NewChain(poolAddr, listAddr, stakepooltest.Record(vote, 1, 0))
		chain.Errs[vote] = errors.New("429 too many requests")

		svc := discovery.NewService(chain, poolAddr)

		// Act
		_, err := svc.Discover(t.Context())

		// Assert
		assert.ErrorIs(t, err, stakepool.ErrReadAccount)
	})
}
