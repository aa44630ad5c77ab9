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

	"github.com/poolwatch/poolwatch/pkg/logger"
	"github.com/poolwatch/poolwatch/pkg/vxtools"
	"github.com/poolwatch/poolwatch/stakepool"
	"github.com/poolwatch/poolwatch/stats"
	"github.com/poolwatch/poolwatch/stats/config"
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

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "Stats report failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}

	keys, err := stakepool.ReadKeys(cfg.InputFile)
	if err != nil {
		return err
	}

	// HTTP client & vx.tools client
	httpClient := &http.Client{
		Timeout:   cfg.HttpClientTimeout,
		Transport: logger.NewTransport(log, nil),
	}
	vx := vxtools.NewClient(httpClient, cfg.VxtoolsAPIURL)

	service := stats.NewService(
		stats.NewIncomeFetcher(vx, cfg.SampleLimit, log),
		schedule,
		stats.WithConcurrency(cfg.Concurrency),
	)

	log.InfoContext(ctx, "Computing stake statistics",
		slog.Int("identities", len(keys)),
		slog.Int("concurrency", cfg.Concurrency),
		slog.Any("epochs", schedule.Epochs()),
	)

	rows, err := service.Compute(ctx, stakepool.Identities(keys))
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := stats.WriteReport(out, schedule, rows); err != nil {
		return err
	}

	log.InfoContext(ctx, "Stats report written",
		slog.String("output", cfg.OutputFile),
		slog.Int("rows", len(rows)),
	)
	return out.Close()
}
