package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/poolwatch/poolwatch/pkg/logger"
	"github.com/poolwatch/poolwatch/refresher/store"
	"github.com/poolwatch/poolwatch/web/config"
	"github.com/poolwatch/poolwatch/web/handler"
	"github.com/poolwatch/poolwatch/web/pool"
)

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

	log.InfoContext(ctx, "Pool API starting",
		slog.String("backend", string(cfg.CacheBackend)),
		slog.String("cacheKey", cfg.CacheKey),
		slog.String("version", version),
		slog.String("date", date),
	)

	// Cache backend
	cache, cacheCloser, err := store.Open(ctx, cfg.Store())
	if err != nil {
		log.ErrorContext(ctx, "Failed to open cache store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cacheCloser()

	// Register handlers
	mux := http.NewServeMux()
	handler.NewGetPool(pool.NewFinder(cache, cfg.CacheKey)).AddRoutes(mux)

	addr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           logger.NewMiddleware(log)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.InfoContext(ctx, "Server started", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.InfoContext(ctx, "Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Server exited gracefully")
}
