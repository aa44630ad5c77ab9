package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/refresher"
	"github.com/poolwatch/poolwatch/stakepool"
	"github.com/poolwatch/poolwatch/web/api"
	"github.com/poolwatch/poolwatch/web/handler"
	"github.com/poolwatch/poolwatch/web/pool"
)

func newServer(t *testing.T, finder handler.PoolFinder) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	handler.NewGetPool(finder).AddRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestGetPool(t *testing.T) {
	t.Parallel()

	t.Run("it returns the queried validators", func(t *testing.T) {
		t.Parallel()

		// Arrange
		var got pool.Query
		finder := finderFunc(func(_ context.Context, q pool.Query) (pool.Page, error) {
			got = q
			return pool.Page{
				Validators: []refresher.CacheRecord{{
					ValidatorKeys: stakepool.ValidatorKeys{Identity: "id1", VoteAccount: "vote1"},
					Name:          "Alpha",
					CurrentStake:  5,
				}},
				Total: 2,
			}, nil
		})
		server := newServer(t, finder)

		// Act
		resp, body := get(t, server.URL+"/pool?min_stake=3&sort=name&limit=1")

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, pool.Query{MinStake: 3, Sort: pool.SortByName, Limit: 1}, got)

		var out api.PoolResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, 2, out.Total)
		require.Len(t, out.Data, 1)
		assert.Equal(t, "vote1", out.Data[0].VoteAccount)
	})

	t.Run("it rejects invalid parameters without querying", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			query string
		}{
			{name: "malformed number", query: "limit=many"},
			{name: "unknown sort", query: "sort=age"},
			{name: "limit too large", query: "limit=100000"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				// Arrange
				server := newServer(t, finderFunc(func(context.Context, pool.Query) (pool.Page, error) {
					t.Error("finder must not be called")
					return pool.Page{}, nil
				}))

				// Act
				resp, body := get(t, server.URL+"/pool?"+tc.query)

				// Assert
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Contains(t, string(body), `"code":400`)
			})
		}
	})

	t.Run("it returns not found before the first publish", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := newServer(t, finderFunc(func(context.Context, pool.Query) (pool.Page, error) {
			return pool.Page{}, pool.ErrNotPublished
		}))

		// Act
		resp, body := get(t, server.URL+"/pool")

		// Assert
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"code":404,"message":"pool data has not been published"}`, string(body))
	})

	t.Run("it hides backend failures", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := newServer(t, finderFunc(func(context.Context, pool.Query) (pool.Page, error) {
			return pool.Page{}, errors.New("dial tcp 10.0.0.5:6379: connection refused")
		}))

		// Act
		resp, body := get(t, server.URL+"/pool")

		// Assert
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "10.0.0.5")
	})
}

type finderFunc func(ctx context.Context, q pool.Query) (pool.Page, error)

func (f finderFunc) Find(ctx context.Context, q pool.Query) (pool.Page, error) { return f(ctx, q) }
