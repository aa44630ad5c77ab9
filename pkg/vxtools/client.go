package vxtools

import (
	"context"
	"net/http"
	"time"

	"github.com/poolwatch/poolwatch/pkg/httpkit"
)

// DefaultBaseURL is the public vx.tools API
const DefaultBaseURL = "https://api.vx.tools"

// DefaultLimit is the number of epochs requested per identity
const DefaultLimit = 100

// Client represents a vx.tools API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewDefaultClient creates a client for the public API with a 30s timeout
func NewDefaultClient() *Client {
	return NewClient(&http.Client{Timeout: 30 * time.Second}, DefaultBaseURL)
}

// NewClient creates a new vx.tools API client with custom HTTP client and base URL
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// EpochIncomeRequest represents parameters for getting epoch income
type EpochIncomeRequest struct {
	Identity string `json:"identity"`
	Limit    int    `json:"limit"`
}

// EpochIncome is one epoch of a validator's income record.
// Stake is in lamports.
type EpochIncome struct {
	Epoch uint64 `json:"epoch"`
	Stake uint64 `json:"stake"`
}

// EpochIncome retrieves per-epoch stake for an identity
func (c *Client) EpochIncome(ctx context.Context, req EpochIncomeRequest) ([]EpochIncome, error) {
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}

	httpReq, err := httpkit.NewJSONRequest(ctx, http.MethodPost, c.baseURL+"/epochs/income", req)
	if err != nil {
		return nil, err
	}

	var income []EpochIncome
	if err := httpkit.DoJSON(c.httpClient, httpReq, &income); err != nil {
		return nil, err
	}
	return income, nil
}
