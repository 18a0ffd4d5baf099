// Command scheduler runs the batch jobs on cron schedules in a single
// long-lived process, for deployments without an external scheduler.
// The charges schedule can fire daily; the trigger-day gate inside the
// orchestrator decides whether charges are actually generated.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/trilhaufpb/caixinha/internal/billing"
	"github.com/trilhaufpb/caixinha/internal/config"
	"github.com/trilhaufpb/caixinha/internal/gateway"
	"github.com/trilhaufpb/caixinha/internal/ledger/sqlite"
	"github.com/trilhaufpb/caixinha/internal/notify"
	"github.com/trilhaufpb/caixinha/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Ledger.DBPath)
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	orch := billing.New(store, gateway.NewSandbox(), notify.NewLogNotifier(nil), cfg.Billing, cfg.Ledger.Sheet)

	c := cron.New()

	if _, err := c.AddFunc(cfg.Scheduler.ChargesSpec, func() {
		report := orch.RunCharges(context.Background(), false)
		slog.Info("scheduled charge cycle finished", "status", report.Status, "succeeded", report.Succeeded, "failed", report.Failed)
	}); err != nil {
		slog.Error("invalid charges schedule", "spec", cfg.Scheduler.ChargesSpec, "error", err)
		os.Exit(1)
	}

	if _, err := c.AddFunc(cfg.Scheduler.PaymentsSpec, func() {
		report := orch.RunPayments(context.Background(), cfg.Scheduler.PaymentsDaysBack)
		slog.Info("scheduled payment check finished", "status", report.Status, "updated", report.Succeeded, "not_found", report.NotFound)
	}); err != nil {
		slog.Error("invalid payments schedule", "spec", cfg.Scheduler.PaymentsSpec, "error", err)
		os.Exit(1)
	}

	if _, err := c.AddFunc(cfg.Scheduler.RemindersSpec, func() {
		report := orch.RunReminders(context.Background())
		slog.Info("scheduled reminder cycle finished", "status", report.Status, "succeeded", report.Succeeded, "skipped", report.Skipped)
	}); err != nil {
		slog.Error("invalid reminders schedule", "spec", cfg.Scheduler.RemindersSpec, "error", err)
		os.Exit(1)
	}

	slog.Info("scheduler started",
		"charges", cfg.Scheduler.ChargesSpec,
		"payments", cfg.Scheduler.PaymentsSpec,
		"reminders", cfg.Scheduler.RemindersSpec,
	)
	c.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down scheduler")
	<-c.Stop().Done()
}
