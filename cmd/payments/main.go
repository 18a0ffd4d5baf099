// Command payments polls the gateway for transfers received in the last N
// days and reconciles them against the roster.
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
	days := flag.Int("days", 1, "number of days to look back for payments")
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
	report := orch.RunPayments(context.Background(), *days)

	slog.Info("job completed",
		"status", report.Status,
		"updated", report.Succeeded,
		"already_paid", report.AlreadyPaid,
		"not_found", report.NotFound,
	)
	if report.Status == models.StatusError {
		os.Exit(1)
	}
}
