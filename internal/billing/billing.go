// Package billing orchestrates the recurring dues cycles: monthly charge
// generation, payment reconciliation from the gateway's polling API, and
// reminder escalation for unpaid members.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trilhaufpb/caixinha/internal/calendar"
	"github.com/trilhaufpb/caixinha/internal/config"
	"github.com/trilhaufpb/caixinha/internal/gateway"
	"github.com/trilhaufpb/caixinha/internal/ledger"
	"github.com/trilhaufpb/caixinha/internal/models"
	"github.com/trilhaufpb/caixinha/internal/notify"
	"github.com/trilhaufpb/caixinha/internal/reconciler"
)

// Orchestrator runs billing cycles against the roster, gateway and
// notifier collaborators. Runs are synchronous and sequential; failures
// inside the per-member loop are isolated, failures before it abort the
// whole cycle.
type Orchestrator struct {
	store    ledger.Store
	gw       gateway.Client
	notifier notify.Notifier
	rec      *reconciler.Reconciler
	policy   config.BillingConfig
	sheet    string
	logger   *slog.Logger

	// now is swapped in tests to pin the trigger day and period.
	now func() time.Time
}

// New creates an Orchestrator applying the given billing policy to the
// given sheet.
func New(store ledger.Store, gw gateway.Client, notifier notify.Notifier, policy config.BillingConfig, sheet string) *Orchestrator {
	return &Orchestrator{
		store:    store,
		gw:       gw,
		notifier: notifier,
		rec:      reconciler.New(store, notifier, sheet),
		policy:   policy,
		sheet:    sheet,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithClock overrides the time source for the orchestrator and its
// reconciler. Used by tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	o.rec.WithClock(now)
	return o
}

// RunCharges generates a charge and notification for every unpaid member.
// Unless force is set, the cycle only runs on the configured Nth business
// day of the month; on any other day it returns a skipped report without
// touching any collaborator.
func (o *Orchestrator) RunCharges(ctx context.Context, force bool) models.RunReport {
	today := o.now()

	if !force && !calendar.IsTriggerDay(today, o.policy.TriggerBusinessDay) {
		o.logger.Info("not the trigger day, skipping charge cycle",
			"date", today.Format("2006-01-02"),
			"trigger_business_day", o.policy.TriggerBusinessDay,
		)
		return models.RunReport{Status: models.StatusSkipped, Reason: "not_trigger_day"}
	}

	period := calendar.PeriodLabel(today)
	o.logger.Info("starting charge cycle", "date", today.Format("2006-01-02"), "period", period)

	unpaid, err := o.store.GetUnpaidMembers(ctx, period, o.sheet)
	if err != nil {
		o.logger.Error("failed to get unpaid members", "error", err)
		return models.RunReport{Status: models.StatusError, Err: err.Error()}
	}
	if len(unpaid) == 0 {
		o.logger.Info("no unpaid members found")
		return models.RunReport{Status: models.StatusSuccess}
	}
	o.logger.Info("found unpaid members", "count", len(unpaid))

	dueDate := today.AddDate(0, 0, o.policy.ExpiryDays).Format("02/01/2006")
	report := models.RunReport{Status: models.StatusSuccess}
	emailFailures := 0

	for i := range unpaid {
		member := &unpaid[i]
		o.logger.Info("processing member", "name", member.Name, "email", member.Email)

		charge, err := o.gw.CreateCharge(ctx, gateway.ChargeRequest{
			Amount:        o.policy.Amount,
			PayerName:     member.Name,
			Description:   fmt.Sprintf("%s - %s", o.policy.Description, period),
			ExpirySeconds: int64(o.policy.ExpiryDays) * 86400,
		})
		if err != nil {
			// Partial failure is expected; keep charging the rest.
			o.logger.Error("failed to create charge", "name", member.Name, "error", err)
			report.Add(models.Result{Name: member.Name, Email: member.Email, Outcome: models.OutcomeError, Err: err.Error()})
			continue
		}
		o.logger.Info("charge created", "name", member.Name, "txid", charge.TxID)

		if member.Email != "" {
			if err := o.notifier.SendCharge(ctx, member.Email, member.Name, charge, dueDate, o.policy.Amount); err != nil {
				// A lost email does not undo a created charge.
				o.logger.Error("failed to send charge email", "to", member.Email, "error", err)
				emailFailures++
			} else {
				o.logger.Info("charge email sent", "to", member.Email)
			}
		} else {
			o.logger.Warn("member has no email, skipping notification", "name", member.Name)
		}

		report.Add(models.Result{Name: member.Name, Email: member.Email, TxID: charge.TxID, Outcome: models.OutcomeSuccess})
	}

	o.logger.Info("charge cycle complete",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"email_failures", emailFailures,
	)
	return report
}

// RunReminders re-sends a payment request to every unpaid member with an
// email address. Reminders may run on any day; there is no trigger gate
// and no due date.
func (o *Orchestrator) RunReminders(ctx context.Context) models.RunReport {
	today := o.now()
	period := calendar.PeriodLabel(today)
	o.logger.Info("starting reminder cycle", "date", today.Format("2006-01-02"), "period", period)

	unpaid, err := o.store.GetUnpaidMembers(ctx, period, o.sheet)
	if err != nil {
		o.logger.Error("failed to get unpaid members", "error", err)
		return models.RunReport{Status: models.StatusError, Err: err.Error()}
	}
	if len(unpaid) == 0 {
		o.logger.Info("no unpaid members, no reminders to send")
		return models.RunReport{Status: models.StatusSuccess}
	}

	report := models.RunReport{Status: models.StatusSuccess}

	for i := range unpaid {
		member := &unpaid[i]

		if member.Email == "" {
			o.logger.Warn("member has no email, skipping reminder", "name", member.Name)
			report.Add(models.Result{Name: member.Name, Outcome: models.OutcomeSkipped})
			continue
		}

		o.logger.Info("processing member", "name", member.Name, "email", member.Email)

		charge, err := o.gw.CreateCharge(ctx, gateway.ChargeRequest{
			Amount:        o.policy.Amount,
			PayerName:     member.Name,
			Description:   fmt.Sprintf("%s - %s", o.policy.Description, period),
			ExpirySeconds: int64(o.policy.ExpiryDays) * 86400,
		})
		if err != nil {
			o.logger.Error("failed to create charge", "name", member.Name, "error", err)
			report.Add(models.Result{Name: member.Name, Email: member.Email, Outcome: models.OutcomeError, Err: err.Error()})
			continue
		}

		if err := o.notifier.SendReminder(ctx, member.Email, member.Name, charge, o.policy.Amount); err != nil {
			o.logger.Error("failed to send reminder", "to", member.Email, "error", err)
			report.Add(models.Result{Name: member.Name, Email: member.Email, TxID: charge.TxID, Outcome: models.OutcomeError, Err: err.Error()})
			continue
		}
		o.logger.Info("reminder sent", "to", member.Email)

		report.Add(models.Result{Name: member.Name, Email: member.Email, TxID: charge.TxID, Outcome: models.OutcomeSuccess})
	}

	o.logger.Info("reminder cycle complete", "succeeded", report.Succeeded, "failed", report.Failed, "skipped", report.Skipped)
	return report
}

// RunPayments polls the gateway for transfers received in the last daysBack
// days and hands them to the reconciler. A listing failure aborts the run;
// per-event failures are isolated by the reconciler.
func (o *Orchestrator) RunPayments(ctx context.Context, daysBack int) models.RunReport {
	today := o.now()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -daysBack)
	end := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	o.logger.Info("checking for received payments",
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)

	events, err := o.gw.ListReceivedPayments(ctx, start, end)
	if err != nil {
		o.logger.Error("failed to list received payments", "error", err)
		return models.RunReport{Status: models.StatusError, Err: err.Error()}
	}

	return o.rec.Process(ctx, events)
}
