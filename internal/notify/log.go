package notify

import (
	"context"
	"log/slog"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications as structured log lines instead of
// delivering email. It is the default collaborator for development and for
// deployments that have not configured a mail sender.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses slog's default.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendCharge(_ context.Context, to, name string, charge *models.Charge, dueDate, amount string) error {
	n.logger.Info("charge notification",
		"to", to,
		"name", name,
		"txid", charge.TxID,
		"due_date", dueDate,
		"amount", amount,
	)
	return nil
}

func (n *LogNotifier) SendReminder(_ context.Context, to, name string, charge *models.Charge, amount string) error {
	n.logger.Info("reminder notification",
		"to", to,
		"name", name,
		"txid", charge.TxID,
		"amount", amount,
	)
	return nil
}

func (n *LogNotifier) SendConfirmation(_ context.Context, to, name, amount, period string) error {
	n.logger.Info("confirmation notification",
		"to", to,
		"name", name,
		"amount", amount,
		"period", period,
	)
	return nil
}
