package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jarvisgaming/TaikoBot_Go/internal/config"
	"github.com/jarvisgaming/TaikoBot_Go/internal/database"
	"github.com/jarvisgaming/TaikoBot_Go/internal/database/postgres"
	"github.com/jarvisgaming/TaikoBot_Go/internal/osuapi"
	"github.com/jarvisgaming/TaikoBot_Go/internal/reward"
	"github.com/jarvisgaming/TaikoBot_Go/internal/server"
	"github.com/jarvisgaming/TaikoBot_Go/internal/shop"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
	"github.com/jarvisgaming/TaikoBot_Go/internal/upgrade"
)

// Connection pool settings
const (
	dbMaxConns       = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	shutdownDeadline = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	for _, w := range warnings {
		slog.Warn("Environment validation warning", "warning", w)
	}
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// The upgrade catalog and the persisted schema must agree before any
	// submission is processed.
	registry := upgrade.NewDefaultRegistry()
	if err := registry.Validate(); err != nil {
		slog.Error("Upgrade catalog is invalid", "error", err)
		os.Exit(1)
	}

	shopRepo := postgres.NewShopRepository(pool)
	knownIDs, err := shopRepo.ListKnownUpgradeIDs(ctx)
	if err != nil {
		slog.Error("Failed to read upgrade schema", "error", err)
		os.Exit(1)
	}
	if err := registry.SyncCheck(knownIDs); err != nil {
		slog.Error("Upgrade catalog out of sync with database", "error", err)
		os.Exit(1)
	}

	osuClient := osuapi.NewClient(cfg)

	submissionService := submission.NewService(
		postgres.NewSubmissionRepository(pool),
		osuClient,
		reward.NewPipeline(registry),
		reward.DefaultFormula(),
	)
	shopService := shop.NewService(shopRepo, registry)
	userRepo := postgres.NewUserRepository(pool)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, submissionService, shopService, userRepo)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
