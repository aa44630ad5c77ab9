//go:build acceptance

package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/migrator/migratortest"
	"github.com/poolwatch/poolwatch/refresher/store/pgxstore"
	"github.com/poolwatch/poolwatch/web/api"
	"github.com/poolwatch/poolwatch/web/handler"
	"github.com/poolwatch/poolwatch/web/pool"
	"github.com/poolwatch/poolwatch/web/testcfg"
)

const seededSnapshot = `[
  {"validatorKeys":{"identity":"id-a","voteAccount":"vote-a"},"name":"Alpha","logo":"a.png","currentStake":3000000000,"chainActiveStake":2900000000,"transientStakeLamports":0},
  {"validatorKeys":{"identity":"id-b","voteAccount":"vote-b"},"name":"Bravo","logo":"b.png","currentStake":9000000000,"chainActiveStake":9000000000,"transientStakeLamports":5},
  {"validatorKeys":{"identity":"id-c","voteAccount":"vote-c"},"name":"Charlie","logo":"","currentStake":500000000,"chainActiveStake":500000000,"transientStakeLamports":0}
]`

func newPoolServer(t *testing.T, cacheKey string) *httptest.Server {
	t.Helper()

	testCfg := testcfg.New()
	db := migratortest.CreateSeededTestDatabase(t, testCfg.MigrationsDir, testCfg.CacheKey, []byte(seededSnapshot))
	cache, _ := pgxstore.New(db)

	mux := http.NewServeMux()
	handler.NewGetPool(pool.NewFinder(cache, cacheKey)).AddRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getPool(t *testing.T, url string) (int, api.PoolResponse) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out api.PoolResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestPoolAPIAcceptanceBehavior(t *testing.T) {
	t.Parallel()

	testCfg := testcfg.New()

	t.Run("it serves the published snapshot in published order", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := newPoolServer(t, testCfg.CacheKey)

		// Act
		status, resp := getPool(t, server.URL+"/pool")

		// Assert
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 3, resp.Total)
		require.Len(t, resp.Data, 3)
		assert.Equal(t, "vote-a", resp.Data[0].VoteAccount)
		assert.Equal(t, uint64(5), resp.Data[1].TransientStakeLamports)
	})

	t.Run("it filters and orders by stake", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := newPoolServer(t, testCfg.CacheKey)

		// Act
		status, resp := getPool(t, server.URL+"/pool?min_stake=1000000000&sort=stake&limit=1")

		// Assert
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Bravo", resp.Data[0].Name)
	})

	t.Run("it returns not found for a key that was never published", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := newPoolServer(t, testCfg.CacheKey+"-absent")

		// Act
		status, _ := getPool(t, server.URL+"/pool")

		// Assert
		assert.Equal(t, http.StatusNotFound, status)
	})
}
