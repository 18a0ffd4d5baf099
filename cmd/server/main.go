// Command server runs the inbound HTTP boundary: the payment webhook,
// health checks and Prometheus metrics.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/trilhaufpb/caixinha/internal/config"
	"github.com/trilhaufpb/caixinha/internal/ledger/sqlite"
	"github.com/trilhaufpb/caixinha/internal/notify"
	"github.com/trilhaufpb/caixinha/internal/reconciler"
	"github.com/trilhaufpb/caixinha/internal/server"
)

func main() {
	// JSON logs for the long-running server; the batch jobs use tint.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Ledger.DBPath)
	if err != nil {
		logger.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("ledger opened", "database", cfg.Ledger.DBPath, "sheet", cfg.Ledger.Sheet)

	rec := reconciler.New(store, notify.NewLogNotifier(logger), cfg.Ledger.Sheet)
	webhook := server.NewWebhookHandler(rec, cfg.WebhookSecret, logger)
	if cfg.WebhookSecret == "" {
		logger.Warn("WEBHOOK_SECRET not set, webhook accepts unauthenticated posts")
	}

	router := server.NewRouter(logger, server.RouterDependencies{
		Webhook: webhook,
		Health:  store,
	})
	srv := server.New(logger, cfg.HTTP, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
