package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// Ensure Sandbox implements Client
var _ Client = (*Sandbox)(nil)

// Sandbox is an in-process gateway for development and tests. It fabricates
// charges with locally generated transaction ids and remembers payments fed
// to it with Receive, so the polling job can be exercised end to end
// without gateway credentials.
type Sandbox struct {
	mu       sync.Mutex
	nextLoc  int64
	charges  []models.Charge
	received []models.PaymentEvent
}

// NewSandbox creates an empty sandbox gateway.
func NewSandbox() *Sandbox {
	return &Sandbox{nextLoc: 1}
}

// CreateCharge fabricates an active charge with a fresh transaction id.
func (s *Sandbox) CreateCharge(_ context.Context, req ChargeRequest) (*models.Charge, error) {
	if req.Amount == "" {
		return nil, fmt.Errorf("charge amount is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// PIX txids are alphanumeric, up to 35 chars.
	txid := strings.ReplaceAll(uuid.New().String(), "-", "")
	code := fmt.Sprintf("00020126sandbox%s5204000053039865802BR%s", txid, req.Amount)

	charge := models.Charge{
		TxID:          txid,
		Status:        "ATIVA",
		CopyPasteCode: code,
		QRCodeBase64:  base64.StdEncoding.EncodeToString([]byte(code)),
		LocationID:    s.nextLoc,
		Amount:        req.Amount,
	}
	s.nextLoc++
	s.charges = append(s.charges, charge)

	return &charge, nil
}

// ListReceivedPayments returns the recorded payments inside [start, end].
func (s *Sandbox) ListReceivedPayments(_ context.Context, start, end time.Time) ([]models.PaymentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PaymentEvent
	for _, ev := range s.received {
		if ev.Timestamp.Before(start) || ev.Timestamp.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// Receive records a payment event as if the network had delivered it.
func (s *Sandbox) Receive(ev models.PaymentEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, ev)
}

// Charges returns a copy of every charge created so far.
func (s *Sandbox) Charges() []models.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Charge, len(s.charges))
	copy(out, s.charges)
	return out
}
