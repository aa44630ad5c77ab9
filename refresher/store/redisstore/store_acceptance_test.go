//go:build acceptance

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/refresher/store/redisstore"
	"github.com/poolwatch/poolwatch/refresher/testcfg"
)

func TestStoreAcceptanceBehavior(t *testing.T) {
	testCfg := testcfg.New()

	t.Run("it overwrites the key and clears its expiry", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(t.Context(), testCfg.Timeout)
		defer cancel()

		opts, err := redis.ParseURL(testCfg.RedisURL)
		require.NoError(t, err)
		client := redis.NewClient(opts)
		defer client.Close()

		require.NoError(t, client.Set(ctx, testCfg.CacheKey, "stale", time.Minute).Err())
		store := redisstore.New(client)

		// Act
		err = store.Put(ctx, testCfg.CacheKey, []byte(`[{"name":"fresh"}]`))

		// Assert
		require.NoError(t, err)
		got, err := client.Get(ctx, testCfg.CacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"fresh"}]`, got)

		ttl, err := client.TTL(ctx, testCfg.CacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl, "no expiry")
	})
	t.Run("it reads back what was put", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(t.Context(), testCfg.Timeout)
		defer cancel()

		store, closer, err := redisstore.Open(testCfg.RedisURL)
		require.NoError(t, err)
		defer closer()
		require.NoError(t, store.Put(ctx, testCfg.CacheKey, []byte(`[]`)))

		// Act
		got, err := store.Get(ctx, testCfg.CacheKey)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("it reports a key that was never written", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(t.Context(), testCfg.Timeout)
		defer cancel()

		store, closer, err := redisstore.Open(testCfg.RedisURL)
		require.NoError(t, err)
		defer closer()

		// Act
		_, err = store.Get(ctx, testCfg.CacheKey+"-absent")

		// Assert
		assert.ErrorIs(t, err, redisstore.ErrNotFound)
	})
}
