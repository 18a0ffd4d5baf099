// Package reconciler matches inbound payment events against the roster and
// drives idempotent status transitions on the ledger.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/trilhaufpb/caixinha/internal/calendar"
	"github.com/trilhaufpb/caixinha/internal/ledger"
	"github.com/trilhaufpb/caixinha/internal/matcher"
	"github.com/trilhaufpb/caixinha/internal/models"
	"github.com/trilhaufpb/caixinha/internal/notify"
)

// Reconciler consumes payment events one batch at a time. It must be
// invoked by a single sequential runner: the ledger write path is
// read-then-write, so concurrent reconciliation of the same member/period
// races without an external lock.
type Reconciler struct {
	store    ledger.Store
	notifier notify.Notifier
	sheet    string
	logger   *slog.Logger

	// now is swapped in tests to pin the billing period.
	now func() time.Time
}

// New creates a Reconciler operating on the given sheet.
func New(store ledger.Store, notifier notify.Notifier, sheet string) *Reconciler {
	return &Reconciler{
		store:    store,
		notifier: notifier,
		sheet:    sheet,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Process reconciles a batch of payment events against a fresh roster
// snapshot. Per-event outcomes are isolated: one bad event never stops the
// batch. Only a roster fetch failure aborts the run.
func (r *Reconciler) Process(ctx context.Context, events []models.PaymentEvent) models.RunReport {
	report := models.RunReport{Status: models.StatusSuccess}

	if len(events) == 0 {
		r.logger.Info("no payment events to process")
		return report
	}

	members, err := r.store.GetMembers(ctx, r.sheet)
	if err != nil {
		r.logger.Error("failed to get members", "error", err)
		return models.RunReport{Status: models.StatusError, Err: err.Error()}
	}

	period := calendar.PeriodLabel(r.now())
	r.logger.Info("processing payment events", "count", len(events), "period", period)

	for _, ev := range events {
		report.Add(r.processOne(ctx, ev, members, period))
	}

	r.logger.Info("payment processing complete",
		"updated", report.Succeeded,
		"already_paid", report.AlreadyPaid,
		"not_found", report.NotFound,
		"failed", report.Failed,
	)
	return report
}

func (r *Reconciler) processOne(ctx context.Context, ev models.PaymentEvent, members []models.Member, period string) models.Result {
	if ev.TxID == "" {
		r.logger.Warn("payment event without transaction id, skipping", "payer", ev.PayerName)
		return models.Result{Payer: ev.PayerName, Outcome: models.OutcomeSkipped}
	}

	r.logger.Info("processing payment event", "txid", ev.TxID, "amount", ev.Amount, "payer", ev.PayerName)

	member, ok := matcher.Resolve(ev.PayerName, members)
	if !ok {
		r.logger.Warn("member not found for payer", "payer", ev.PayerName, "txid", ev.TxID)
		return models.Result{Payer: ev.PayerName, TxID: ev.TxID, Outcome: models.OutcomeNotFound}
	}

	// Idempotency guard: a re-delivered or duplicate event must not
	// rewrite the cell or re-send a confirmation.
	if member.PaidFor(period) {
		r.logger.Info("member already marked as paid", "name", member.Name, "period", period)
		return models.Result{Name: member.Name, TxID: ev.TxID, Outcome: models.OutcomeAlreadyPaid}
	}

	if err := r.store.MarkPaid(ctx, member.Name, period, r.sheet); err != nil {
		r.logger.Error("failed to mark member as paid", "name", member.Name, "period", period, "error", err)
		return models.Result{Name: member.Name, TxID: ev.TxID, Outcome: models.OutcomeUpdateFailed, Err: err.Error()}
	}
	r.logger.Info("marked member as paid", "name", member.Name, "period", period)

	// Keep the snapshot consistent so a duplicate later in the same batch
	// hits the already-paid guard.
	if member.PaymentStatus == nil {
		member.PaymentStatus = make(map[string]string)
	}
	member.PaymentStatus[period] = "Paid"

	if member.Email != "" {
		if err := r.notifier.SendConfirmation(ctx, member.Email, member.Name, ev.Amount, period); err != nil {
			// Notification failure never reverts the ledger write.
			r.logger.Error("failed to send confirmation", "to", member.Email, "error", err)
		} else {
			r.logger.Info("confirmation sent", "to", member.Email)
		}
	}

	return models.Result{Name: member.Name, Email: member.Email, TxID: ev.TxID, Outcome: models.OutcomeUpdated}
}
