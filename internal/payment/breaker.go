package payment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v82"
)

// BreakerSettings configures the circuit breaker around session creation.
type BreakerSettings struct {
	MaxFailures int
	OpenTimeout time.Duration
}

// breakerGateway trips after consecutive session-creation failures so a
// provider outage fails fast instead of holding checkout requests open.
// Webhook parsing is local and bypasses the breaker.
type breakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[*Session]
}

// NewBreakerGateway wraps next with a circuit breaker.
func NewBreakerGateway(next Gateway, settings BreakerSettings, logger zerolog.Logger) Gateway {
	log := logger.With().Str("component", "payment-breaker").Logger()
	maxFailures := uint32(settings.MaxFailures)

	cb := gobreaker.NewCircuitBreaker[*Session](gobreaker.Settings{
		Name:        "stripe-checkout",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: providerHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &breakerGateway{next: next, cb: cb}
}

func (g *breakerGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	return g.cb.Execute(func() (*Session, error) {
		return g.next.CreateCheckoutSession(ctx, req)
	})
}

func (g *breakerGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	return g.next.ParseWebhook(payload, signature)
}

// providerHealthy reports whether err leaves the provider in good standing.
// Shopper disconnects and requests the provider rejected as invalid say
// nothing about its availability and must not trip the breaker.
func providerHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode > 0 && stripeErr.HTTPStatusCode < 500
	}
	return false
}
