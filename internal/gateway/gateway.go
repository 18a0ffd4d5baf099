// Package gateway abstracts the PIX payment gateway.
//
// The jobs only need two operations: create an immediate charge for a
// member, and list the transfers received in a window. The gateway's
// authentication and wire protocol live entirely behind this interface.
package gateway

import (
	"context"
	"time"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// ChargeRequest carries the billing policy for one charge.
type ChargeRequest struct {
	// Amount is the charge value as a decimal string, e.g. "40.00".
	Amount string

	// PayerName is the member the charge is addressed to.
	PayerName string

	// Description is the payment request text shown to the payer.
	Description string

	// ExpirySeconds is how long the charge stays payable.
	ExpirySeconds int64
}

// Client is the payment gateway collaborator consumed by the jobs.
type Client interface {
	// CreateCharge creates an immediate PIX charge and returns it with
	// its renderable code and QR payload.
	CreateCharge(ctx context.Context, req ChargeRequest) (*models.Charge, error)

	// ListReceivedPayments returns the transfers received in [start, end].
	ListReceivedPayments(ctx context.Context, start, end time.Time) ([]models.PaymentEvent, error)
}
