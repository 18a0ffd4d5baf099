// Command charges generates PIX charges for every member still unpaid in
// the current billing period. It runs as a batch job: by default it only
// acts on the configured Nth business day of the month.
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
	force := flag.Bool("force", false, "run even if today is not the trigger business day")
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
	report := orch.RunCharges(context.Background(), *force)

	slog.Info("job completed",
		"status", report.Status,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)
	if report.Status == models.StatusError {
		os.Exit(1)
	}
}
