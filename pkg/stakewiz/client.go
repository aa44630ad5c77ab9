package stakewiz

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/poolwatch/poolwatch/pkg/httpkit"
)

// DefaultBaseURL is the public Stakewiz API
const DefaultBaseURL = "https://api.stakewiz.com"

// lamportsPerSOL converts the API's SOL-denominated stake
const lamportsPerSOL = 1_000_000_000

// ErrValidatorNotFound is returned when the API answers with an empty body
var ErrValidatorNotFound = errors.New("validator not found")

// Client represents a Stakewiz API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewDefaultClient creates a client for the public API with a 30s timeout
func NewDefaultClient() *Client {
	return NewClient(&http.Client{Timeout: 30 * time.Second}, DefaultBaseURL)
}

// NewClient creates a new Stakewiz API client with custom HTTP client and base URL
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Validator holds the fields of a validator profile we consume
type Validator struct {
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	ActivatedStake float64 `json:"activated_stake"`
}

// ActivatedStakeLamports rescales ActivatedStake from SOL to lamports,
// rounded to the nearest integer. Negative values clamp to zero.
func (v Validator) ActivatedStakeLamports() uint64 {
	if v.ActivatedStake <= 0 {
		return 0
	}
	return uint64(math.Round(v.ActivatedStake * lamportsPerSOL))
}

// Validator retrieves the profile of the validator voting with voteAccount
func (c *Client) Validator(ctx context.Context, voteAccount string) (Validator, error) {
	req, err := httpkit.NewJSONRequest(ctx, http.MethodGet, c.baseURL+"/validator/"+url.PathEscape(voteAccount), nil)
	if err != nil {
		return Validator{}, err
	}

	var v *Validator
	if err := httpkit.DoJSON(c.httpClient, req, &v); err != nil {
		return Validator{}, err
	}
	if v == nil {
		return Validator{}, ErrValidatorNotFound
	}
	return *v, nil
}
