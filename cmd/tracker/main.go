package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Antoniohaas1337/IndexTracker/internal/catalog"
	"github.com/Antoniohaas1337/IndexTracker/internal/config"
	"github.com/Antoniohaas1337/IndexTracker/internal/fetch"
	"github.com/Antoniohaas1337/IndexTracker/internal/marketapi"
	"github.com/Antoniohaas1337/IndexTracker/internal/progress"
	"github.com/Antoniohaas1337/IndexTracker/internal/server"
	"github.com/Antoniohaas1337/IndexTracker/internal/store"
	"github.com/Antoniohaas1337/IndexTracker/internal/valuation"
	"github.com/Antoniohaas1337/IndexTracker/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/tracker.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.BaseURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := store.New(pool, logger)
	if err := repo.InitSchema(ctx); err != nil {
		logger.Error("failed to init schema", "error", err)
		os.Exit(1)
	}

	logger.Info("database connected")

	// Create market API client
	apiTimeout := cfg.API.Timeout
	if apiTimeout <= 0 {
		apiTimeout = 30 * time.Second
	}
	apiClient := marketapi.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		marketapi.WithLogger(logger),
		marketapi.WithTimeout(apiTimeout),
		marketapi.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	// Valuation engine
	fetchCfg := fetch.Config{
		MaxConcurrent: cfg.Fetcher.MaxConcurrent,
		MaxRetries:    cfg.Fetcher.MaxRetries,
		DelayStep:     cfg.Fetcher.DelayStep,
		DelayDecay:    cfg.Fetcher.DelayDecay,
		MaxDelay:      cfg.Fetcher.MaxDelay,
	}
	engine := valuation.New(apiClient, fetchCfg, logger)

	// Catalog sync service
	catalogSvc := catalog.New(cfg.Catalog, apiClient, repo, logger)
	if err := catalogSvc.Start(ctx); err != nil {
		logger.Error("failed to start catalog service", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		catalogSvc.Stop(shutdownCtx)
	}()

	// Progress hub + HTTP server
	hub := progress.NewHub(logger)
	defer hub.Close()

	srv := server.New(cfg.Server, cfg.Valuation, repo, engine, catalogSvc, hub, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start http server", "error", err)
		os.Exit(1)
	}

	logger.Info("tracker running",
		"instance_id", cfg.Instance.ID,
		"port", cfg.Server.Port,
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}

	logger.Info("tracker stopped")
}
