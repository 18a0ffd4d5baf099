// Package ledger provides abstractions for the membership roster store.
package ledger

import (
	"context"
	"errors"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// ErrMemberNotFound is returned when a named member does not exist on the
// addressed sheet.
var ErrMemberNotFound = errors.New("member not found")

// Store defines the interface for roster storage operations.
// This abstraction allows swapping roster backends (SQLite, a hosted
// spreadsheet, etc.) without changing the jobs. The sheet selector
// addresses an alternate roster, which keeps tests isolated from the
// production sheet.
type Store interface {
	// GetMembers returns a fresh snapshot of all members on the sheet.
	GetMembers(ctx context.Context, sheet string) ([]models.Member, error)

	// GetUnpaidMembers returns the members whose status for the period
	// does not normalize to paid, in roster order.
	GetUnpaidMembers(ctx context.Context, period, sheet string) ([]models.Member, error)

	// MarkPaid sets the member's status for the period to paid.
	// Returns ErrMemberNotFound if the member does not exist.
	MarkPaid(ctx context.Context, name, period, sheet string) error

	// Close releases any resources held by the store.
	Close() error
}
