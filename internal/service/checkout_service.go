package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mini-checkout/internal/metrics"
	"mini-checkout/internal/model"
	"mini-checkout/internal/payment"
	"mini-checkout/internal/repository"

	"github.com/rs/zerolog"
)

// CheckoutSettings holds the session parameters that come from configuration.
type CheckoutSettings struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

// checkoutService implements CheckoutService. It never mutates the cart.
type checkoutService struct {
	cartRepo repository.CartRepository
	gateway  payment.Gateway
	settings CheckoutSettings
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	gateway payment.Gateway,
	settings CheckoutSettings,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo: cartRepo,
		gateway:  gateway,
		settings: settings,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *checkoutService) StartCheckout(ctx context.Context, ownerID string) (string, error) {
	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()
		return "", model.NewPersistenceError("load cart", err)
	}

	if cart.IsEmpty() {
		s.logger.Debug().Str("owner_id", ownerID).Msg("checkout requested for empty cart")
		metrics.CheckoutSessions.WithLabelValues("empty_cart").Inc()
		return "", model.ErrCartEmpty
	}

	req := payment.SessionRequest{
		OwnerID:    ownerID,
		Currency:   s.settings.Currency,
		SuccessURL: s.settings.SuccessURL,
		CancelURL:  s.settings.CancelURL,
		LineItems:  make([]payment.LineItem, 0, len(cart.Items)),
	}
	names := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		req.LineItems = append(req.LineItems, payment.LineItem{
			PriceOfferID: item.PriceOfferID,
			Quantity:     item.Quantity,
		})
		names = append(names, item.ProductName)
	}
	req.ProductName = strings.Join(names, ", ")

	callCtx := ctx
	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	session, err := s.gateway.CreateCheckoutSession(callCtx, req)
	if err == nil && session.URL == "" {
		err = errors.New("checkout session has no redirect URL")
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner_id", ownerID).
			Int("line_items", len(req.LineItems)).
			Msg("failed to start checkout")
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()
		return "", model.NewPaymentGatewayError(err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Str("session_id", session.ID).
		Int("line_items", len(req.LineItems)).
		Msg("checkout session started")
	metrics.CheckoutSessions.WithLabelValues("created").Inc()

	return session.URL, nil
}
