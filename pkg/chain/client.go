// Package chain reads raw account data over the Solana JSON-RPC API
package chain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// DefaultTimeout bounds a single RPC call
const DefaultTimeout = 30 * time.Second

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrRPC             = errors.New("rpc call failed")
)

// Client represents a chain account reader
type Client struct {
	rpc     *rpc.Client
	timeout time.Duration
}

// NewClient creates a reader for endpoint using httpClient for transport.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(httpClient *http.Client, endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rpcClient := jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{HTTPClient: httpClient})

	return &Client{
		rpc:     rpc.NewWithCustomRPCClient(rpcClient),
		timeout: timeout,
	}
}

// AccountData returns the raw bytes held by account at confirmed commitment
func (c *Client) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRPC, account, err)
	}

	data := res.GetBinary()
	if data == nil {
		return nil, fmt.Errorf("%w: %s has no data", ErrAccountNotFound, account)
	}
	return data, nil
}
