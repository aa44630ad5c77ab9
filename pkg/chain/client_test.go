package chain_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/pkg/chain"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params []any           `json:"params"`
}

// rpcServer answers getAccountInfo from accounts; unknown keys get a null value
func rpcServer(t *testing.T, accounts map[string][]byte) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "getAccountInfo", req.Method)
		require.Len(t, req.Params, 2)

		opts, _ := req.Params[1].(map[string]any)
		assert.Equal(t, "base64", opts["encoding"])
		assert.Equal(t, "confirmed", opts["commitment"])

		var value any
		if data, ok := accounts[req.Params[0].(string)]; ok {
			value = map[string]any{
				"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
				"executable": false,
				"lamports":   1_000_000,
				"owner":      solana.SystemProgramID.String(),
				"rentEpoch":  0,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]any{
				"context": map[string]any{"slot": 1},
				"value":   value,
			},
		})
	}))
}

func TestClientAccountData(t *testing.T) {
	t.Parallel()

	t.Run("it returns the decoded account bytes", func(t *testing.T) {
		t.Parallel()

		// Arrange
		account := solana.NewWallet().PublicKey()
		server := rpcServer(t, map[string][]byte{account.String(): {1, 2, 3, 4}})
		defer server.Close()

		client := chain.NewClient(server.Client(), server.URL, time.Second)

		// Act
		data, err := client.AccountData(t.Context(), account)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, data)
	})

	t.Run("it reports a missing account", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := rpcServer(t, nil)
		defer server.Close()

		client := chain.NewClient(server.Client(), server.URL, time.Second)

		// Act
		data, err := client.AccountData(t.Context(), solana.NewWallet().PublicKey())

		// Assert
		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
		assert.Nil(t, data)
	})

	t.Run("it wraps transport failures", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := chain.NewClient(server.Client(), server.URL, time.Second)

		// Act
		_, err := client.AccountData(t.Context(), solana.NewWallet().PublicKey())

		// Assert
		assert.ErrorIs(t, err, chain.ErrRPC)
		assert.NotErrorIs(t, err, chain.ErrAccountNotFound)
	})
}
