package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/trilhaufpb/caixinha/internal/models"
)

// maxBodyBytes bounds webhook request bodies.
const maxBodyBytes = 1 << 20

// Processor consumes batches of payment events. The reconciler satisfies it.
type Processor interface {
	Process(ctx context.Context, events []models.PaymentEvent) models.RunReport
}

// WebhookHandler is the inbound event boundary for payment notifications.
//
// GET answers a static acknowledgment (liveness). POST accepts a JSON body
// with notifications under a "pix" key; an empty body is acknowledged bare,
// because the upstream gateway probes the endpoint that way during mTLS
// setup. When a shared secret is configured, the `hmac` query parameter
// must match it or the request is rejected with 401.
type WebhookHandler struct {
	processor Processor
	secret    string
	logger    *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler. An empty secret disables the
// shared-secret check.
func NewWebhookHandler(processor Processor, secret string, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{processor: processor, secret: secret, logger: logger}
}

// pixNotification is the wire shape of one payment notification.
type pixNotification struct {
	TxID       string `json:"txid"`
	EndToEndID string `json:"endToEndId"`
	Valor      string `json:"valor"`
	Horario    string `json:"horario"`
	Pagador    struct {
		Nome string `json:"nome"`
	} `json:"pagador"`
}

type webhookPayload struct {
	Pix []pixNotification `json:"pix"`
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Webhook endpoint is active",
		})
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		respondJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
	}
}

func (h *WebhookHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.URL.Query().Get("hmac")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.logger.Warn("webhook secret mismatch", "remote_addr", r.RemoteAddr)
			respondJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid body"})
		return
	}

	// The gateway probes with an empty POST; acknowledge bare.
	if len(body) == 0 {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("200"))
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warn("malformed webhook payload", "error", err)
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}

	events := make([]models.PaymentEvent, 0, len(payload.Pix))
	for _, p := range payload.Pix {
		ev := models.PaymentEvent{
			TxID:       p.TxID,
			EndToEndID: p.EndToEndID,
			Amount:     p.Valor,
			PayerName:  p.Pagador.Nome,
		}
		if ts, err := time.Parse(time.RFC3339, p.Horario); err == nil {
			ev.Timestamp = ts
		}
		events = append(events, ev)
	}

	report := h.processor.Process(r.Context(), events)
	for _, res := range report.Results {
		paymentEvents.WithLabelValues(string(res.Outcome)).Inc()
	}

	if report.Status == models.StatusError {
		// Never leak internal error detail to the caller.
		h.logger.Error("webhook processing failed", "error", report.Err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "received",
		"count":  len(events),
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
