// Package notify abstracts member notifications.
//
// Template rendering and delivery (SMTP or an email API) live behind the
// Notifier interface; the jobs only decide when a notification is due and
// what it must carry.
package notify

import (
	"context"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// Notifier is the notification collaborator consumed by the jobs.
// Send failures never revert the work that preceded them: callers log and
// count the failure and keep going.
type Notifier interface {
	// SendCharge delivers a new charge with its payment code, QR payload
	// and due date.
	SendCharge(ctx context.Context, to, name string, charge *models.Charge, dueDate, amount string) error

	// SendReminder delivers a payment reminder with a fresh charge.
	SendReminder(ctx context.Context, to, name string, charge *models.Charge, amount string) error

	// SendConfirmation acknowledges a reconciled payment for the period.
	SendConfirmation(ctx context.Context, to, name, amount, period string) error
}
