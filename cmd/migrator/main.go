package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/poolwatch/poolwatch/migrator"
	"github.com/poolwatch/poolwatch/migrator/config"
	"github.com/poolwatch/poolwatch/pkg/logger"
	"github.com/poolwatch/poolwatch/pkg/pgxdb"
)

// These values are overridden at build time using -ldflags
var (
	version = "dev"
	date    = "unknown"
)

func main() {
	// A local .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", slog.Any("error", err))
		os.Exit(1)
	}

	// Load configuration from environment
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize logger and set as default
	log := logger.NewFromConfig(cfg.Log)
	slog.SetDefault(log)

	log.Info("Starting database migrator",
		slog.String("migrationsDir", cfg.MigrationsDir),
		slog.String("version", version),
		slog.String("date", date),
	)

	// Create a context that cancels on SIGINT/SIGTERM _or_ when the timeout elapses
	baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(baseCtx, cfg.OperationTimeout)
	defer cancel()

	// Connect to database
	db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Apply migrations
	log.Info("Applying database migrations")
	if err := migrator.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
		log.Error("Failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Database migrations applied successfully")

	// Seed the cache table if a snapshot is given
	if cfg.SeedSnapshotFile != "" {
		log.Info("Seeding pool cache",
			slog.String("snapshot", cfg.SeedSnapshotFile),
			slog.String("key", cfg.CacheKey),
		)
		if err := migrator.SeedCacheFromSnapshot(ctx, db, cfg.CacheKey, cfg.SeedSnapshotFile); err != nil {
			log.Error("Failed to seed pool cache", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("Pool cache seeded successfully")
	}

	log.Info("Database migrator completed successfully")
}
