package stats

import (
	"context"
	"log/slog"

	"github.com/poolwatch/poolwatch/pkg/vxtools"
)

// FetchStatus tells an empty answer apart from a failed fetch.
// The projection treats both the same; the status is kept for reporting.
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchFailed
)

func (s FetchStatus) String() string {
	if s == FetchFailed {
		return "failed"
	}
	return "ok"
}

// FetchResult is the samples returned for one identity
type FetchResult struct {
	Samples []Sample
	Status  FetchStatus
}

// Fetcher retrieves epoch samples for an identity. It never fails:
// a failed fetch is reported as FetchFailed with no samples.
type Fetcher interface {
	Fetch(ctx context.Context, identity string) FetchResult
}

// IncomeClient fetches epoch income from the API
type IncomeClient interface {
	EpochIncome(ctx context.Context, req vxtools.EpochIncomeRequest) ([]vxtools.EpochIncome, error)
}

// IncomeFetcher adapts the epoch income API to Fetcher.
// One attempt per call, no retry.
type IncomeFetcher struct {
	client IncomeClient
	limit  int
	log    *slog.Logger
}

// NewIncomeFetcher creates a Fetcher requesting up to limit epochs per identity
func NewIncomeFetcher(client IncomeClient, limit int, log *slog.Logger) *IncomeFetcher {
	if limit <= 0 {
		limit = vxtools.DefaultLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &IncomeFetcher{client: client, limit: limit, log: log}
}

// Fetch implements Fetcher
func (f *IncomeFetcher) Fetch(ctx context.Context, identity string) FetchResult {
	income, err := f.client.EpochIncome(ctx, vxtools.EpochIncomeRequest{
		Identity: identity,
		Limit:    f.limit,
	})
	if err != nil {
		f.log.WarnContext(ctx, "Epoch income fetch failed, treating as no data",
			slog.String("identity", identity),
			slog.Any("error", err),
		)
		return FetchResult{Status: FetchFailed}
	}

	samples := make([]Sample, len(income))
	for i, e := range income {
		samples[i] = Sample{Epoch: e.Epoch, Stake: e.Stake}
	}
	return FetchResult{Samples: samples, Status: FetchOK}
}
