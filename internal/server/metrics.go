package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caixinha_webhook_requests_total",
		Help: "Webhook requests by HTTP status code.",
	}, []string{"code"})

	paymentEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caixinha_payment_events_total",
		Help: "Payment events processed by reconciliation outcome.",
	}, []string{"outcome"})
)
