package api

// PoolRequest holds the query parameters of GET /pool
type PoolRequest struct {
	MinStake uint64 `query:"min_stake"` // Minimum current stake in lamports
	Sort     string `query:"sort"`      // "stake", "name" or empty for published order
	Limit    int    `query:"limit"`     // 0 returns every validator
}

// Validator is one cached validator in the API response
type Validator struct {
	Identity               string `json:"identity"`
	VoteAccount            string `json:"voteAccount"`
	Name                   string `json:"name"`
	Logo                   string `json:"logo"`
	CurrentStake           uint64 `json:"currentStake"`
	ChainActiveStake       uint64 `json:"chainActiveStake"`
	TransientStakeLamports uint64 `json:"transientStakeLamports"`
}

// PoolResponse is the body of GET /pool
type PoolResponse struct {
	Data  []Validator `json:"data"`
	Total int         `json:"total"`
}
