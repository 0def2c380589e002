package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	// WebhookEvents counts webhook deliveries by outcome: recorded, duplicate,
	// ignored, invalid_signature or failed.
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_webhook_events_total",
			Help: "Webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	// CheckoutSessions counts checkout attempts by result: created, empty_cart or failed.
	CheckoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session attempts by result",
		},
		[]string{"result"},
	)
)
