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

	"github.com/poolwatch/poolwatch/discovery"
	"github.com/poolwatch/poolwatch/discovery/config"
	"github.com/poolwatch/poolwatch/pkg/chain"
	"github.com/poolwatch/poolwatch/pkg/logger"
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

	// RPC client
	httpClient := &http.Client{Transport: logger.NewTransport(log, nil)}
	rpc := chain.NewClient(httpClient, cfg.Chain.RPCURL, cfg.Chain.Timeout)

	log.InfoContext(ctx, "Discovering stake pool validators",
		slog.String("pool", cfg.Chain.StakePool.String()),
		slog.String("output", cfg.OutputFile),
	)

	res, err := discovery.NewService(rpc, cfg.Chain.StakePool).Discover(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Discovery failed", slog.Any("error", err))
		os.Exit(1)
	}

	for _, vote := range res.Missing {
		log.WarnContext(ctx, "Vote account not found, validator left out",
			slog.String("voteAccount", vote.String()),
		)
	}

	if err := stakepool.WriteKeys(cfg.OutputFile, res.Keys); err != nil {
		log.ErrorContext(ctx, "Failed to write validator keys", slog.Any("error", err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Discovery completed",
		slog.Int("validators", len(res.Keys)),
		slog.Int("missing", len(res.Missing)),
	)
}
