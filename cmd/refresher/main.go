package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/poolwatch/poolwatch/pkg/chain"
	"github.com/poolwatch/poolwatch/pkg/clock"
	"github.com/poolwatch/poolwatch/pkg/logger"
	"github.com/poolwatch/poolwatch/pkg/ratelimit"
	"github.com/poolwatch/poolwatch/pkg/stakewiz"
	"github.com/poolwatch/poolwatch/refresher"
	"github.com/poolwatch/poolwatch/refresher/config"
	"github.com/poolwatch/poolwatch/refresher/store"
	"github.com/poolwatch/poolwatch/stakepool"
)

func main() {
	// A local .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize logger and set as default
	log := logger.NewFromConfig(cfg.Log)
	slog.SetDefault(log)

	// Prepare context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys, err := stakepool.ReadKeys(cfg.InputFile)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read validator keys", slog.Any("error", err))
		os.Exit(1)
	}

	// Cache backend
	kv, kvCloser, err := store.Open(ctx, cfg.Store())
	if err != nil {
		log.ErrorContext(ctx, "Failed to open cache store", slog.Any("error", err))
		os.Exit(1)
	}
	defer kvCloser()

	// HTTP clients
	rpc := chain.NewClient(
		&http.Client{Transport: logger.NewTransport(log, nil)},
		cfg.Chain.RPCURL,
		cfg.Chain.Timeout,
	)
	wiz := stakewiz.NewClient(
		&http.Client{Timeout: cfg.HttpClientTimeout, Transport: logger.NewTransport(log, nil)},
		cfg.StakewizAPIURL,
	)

	// Create refresher service
	service := refresher.NewService(
		rpc,
		wiz,
		refresher.NewPublisher(cfg.SnapshotFile, cfg.CacheKey, kv),
		cfg.Chain.StakePool,
		refresher.WithGate(ratelimit.NewFixedInterval(clock.SystemClock{}, cfg.LookupInterval)),
		refresher.WithMinActiveStake(cfg.MinActiveStake),
		refresher.WithStakeSource(cfg.StakeSource),
		refresher.WithFailurePolicy(cfg.OnEnrichmentError),
	)

	log.InfoContext(ctx, "Starting pool cache refresh",
		slog.String("pool", cfg.Chain.StakePool.String()),
		slog.String("backend", string(cfg.CacheBackend)),
		slog.String("cacheKey", cfg.CacheKey),
		slog.Int("inputs", len(keys)),
	)
	events, done := service.Start(ctx, keys)

	// Subscribe to events for logging
	var failed bool
	subCloser := setupEventLogging(ctx, events, log, func() { failed = true })

	<-done
	subCloser()

	if failed {
		kvCloser()
		os.Exit(1)
	}
}

// setupEventLogging configures event handlers using slog directly
func setupEventLogging(ctx context.Context, events <-chan refresher.Event, log *slog.Logger, onFailure func()) func() {
	return refresher.NewSubscriber(events,
		refresher.OnRefreshStarted(func(event refresher.RefreshStarted) {
			log.InfoContext(ctx, "Refresh started",
				slog.String("startedAt", event.StartedAt.Format(logger.BritishTimeFormat)),
				slog.String("validatorList", event.ValidatorList.String()),
				slog.Int("onChain", event.OnChain),
				slog.Int("inputs", event.Inputs),
			)
		}),
		refresher.OnValidatorUnmatched(func(event refresher.ValidatorUnmatched) {
			log.WarnContext(ctx, "Validator not in pool",
				slog.String("identity", event.Keys.Identity),
				slog.String("voteAccount", event.Keys.VoteAccount),
			)
		}),
		refresher.OnValidatorSkipped(func(event refresher.ValidatorSkipped) {
			log.DebugContext(ctx, "Validator below stake threshold",
				slog.String("voteAccount", event.Match.VoteAccount),
				slog.Uint64("activeStake", event.Match.Stake.ActiveStakeLamports),
				slog.Uint64("threshold", event.Threshold),
			)
		}),
		refresher.OnValidatorCached(func(event refresher.ValidatorCached) {
			log.InfoContext(ctx, "Validator cached",
				slog.String("name", event.Record.Name),
				slog.String("voteAccount", event.Record.ValidatorKeys.VoteAccount),
				slog.Uint64("currentStake", event.Record.CurrentStake),
			)
		}),
		refresher.OnValidatorFailed(func(event refresher.ValidatorFailed) {
			log.WarnContext(ctx, "Validator lookup failed, skipping",
				slog.String("voteAccount", event.Match.VoteAccount),
				slog.Any("error", event.Err),
			)
		}),
		refresher.OnRefreshDone(func(event refresher.RefreshDone) {
			log.InfoContext(ctx, "Refresh completed",
				slog.Int("records", event.Records),
				slog.Int("skipped", event.Skipped),
				slog.Int("unmatched", event.Unmatched),
				slog.Int("failed", event.Failed),
				slog.Duration("duration", event.Duration),
			)
		}),
		refresher.OnRefreshFailed(func(event refresher.RefreshFailed) {
			log.ErrorContext(ctx, "Refresh failed", slog.Any("error", event.Err))
			onFailure()
		}),
	)
}
