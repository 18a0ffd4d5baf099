// Command reminders re-sends a payment request to every unpaid member with
// an email address. Unlike charges, it may run on any day.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/trilhaufpb/caixinha/internal/billing"
	"github.com/trilhaufpb/caixinha/internal/config"
	"github.com/trilhaufpb/caixinha/internal/gateway"
	"github.com/trilhaufpb/caixinha/internal/ledger/sqlite"
	"github.com/trilhaufpb/caixinha/internal/models"
	"github.com/trilhaufpb/caixinha/internal/notify"
	"github.com/trilhaufpb/caixinha/pkg/logging"
)

func main() {
	flag.Parse()

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
	report := orch.RunReminders(context.Background())

	slog.Info("job completed",
		"status", report.Status,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	if report.Status == models.StatusError {
		os.Exit(1)
	}
}
