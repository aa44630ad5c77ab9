package bind

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/poolwatch/poolwatch/web/api"
	"github.com/poolwatch/poolwatch/web/pool"
)

// Sentinel errors for request binding
var (
	ErrInvalidMinStake = errors.New("invalid min_stake parameter")
	ErrInvalidLimit    = errors.New("invalid limit parameter")

	ErrNotNumeric = errors.New("must be a non-negative integer")
)

// GetPoolRequest binds query parameters to a PoolRequest.
// Absent parameters keep their zero values.
func GetPoolRequest(r *http.Request) (api.PoolRequest, error) {
	var req api.PoolRequest
	query := r.URL.Query()

	if v := query.Get("min_stake"); v != "" {
		minStake, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidMinStake, ErrNotNumeric)
		}
		req.MinStake = minStake
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return req, fmt.Errorf("%w: %w", ErrInvalidLimit, ErrNotNumeric)
		}
		req.Limit = limit
	}

	req.Sort = query.Get("sort")
	return req, nil
}

// GetPoolResponse binds a query result to the API response format
func GetPoolResponse(page pool.Page) api.PoolResponse {
	data := make([]api.Validator, len(page.Validators))
	for i, r := range page.Validators {
		data[i] = api.Validator{
			Identity:               r.ValidatorKeys.Identity,
			VoteAccount:            r.ValidatorKeys.VoteAccount,
			Name:                   r.Name,
			Logo:                   r.Logo,
			CurrentStake:           r.CurrentStake,
			ChainActiveStake:       r.ChainActiveStake,
			TransientStakeLamports: r.TransientStakeLamports,
		}
	}
	return api.PoolResponse{Data: data, Total: page.Total}
}
