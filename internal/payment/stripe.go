package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// stripeGateway implements Gateway against the Stripe API.
type stripeGateway struct {
	sessions      session.Client
	webhookSecret string
	logger        zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed gateway. A nil backend selects
// the default Stripe API backend.
func NewStripeGateway(secretKey, webhookSecret string, backend stripe.Backend, logger zerolog.Logger) Gateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &stripeGateway{
		sessions:      session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
		logger:        logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		ClientReferenceID:  stripe.String(req.OwnerID),
	}
	params.Context = ctx
	if req.Currency != "" {
		params.Currency = stripe.String(req.Currency)
	}
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceOfferID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	params.AddMetadata(MetadataOwnerID, req.OwnerID)
	params.AddMetadata(MetadataProductName, req.ProductName)

	s, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("owner_id", req.OwnerID).
			Int("line_items", len(req.LineItems)).
			Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Info().
		Str("session_id", s.ID).
		Str("owner_id", req.OwnerID).
		Msg("checkout session created")

	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		g.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return nil, &model.DomainError{
			Code:    model.ErrCodeInvalidSignature,
			Message: model.ErrInvalidSignature.Message,
			Err:     err,
		}
	}

	event := &Event{ID: ev.ID, Type: string(ev.Type)}
	if event.Type != EventCheckoutSessionCompleted || ev.Data == nil {
		return event, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		g.logger.Error().Err(err).Str("event_id", ev.ID).Msg("failed to decode checkout session")
		return nil, model.NewWebhookProcessingError(fmt.Errorf("failed to decode checkout session: %w", err))
	}
	event.Session = toCompletedSession(&cs)

	return event, nil
}

func toCompletedSession(cs *stripe.CheckoutSession) *CompletedSession {
	out := &CompletedSession{
		ID:                 cs.ID,
		AmountTotal:        cs.AmountTotal,
		Currency:           string(cs.Currency),
		PaymentStatus:      string(cs.PaymentStatus),
		PaymentMethodTypes: cs.PaymentMethodTypes,
		OwnerID:            cs.ClientReferenceID,
	}
	if cs.PaymentIntent != nil {
		out.PaymentIntentID = cs.PaymentIntent.ID
	}
	if cs.CustomerDetails != nil {
		out.CustomerEmail = cs.CustomerDetails.Email
		out.CustomerName = cs.CustomerDetails.Name
	}
	if out.OwnerID == "" {
		out.OwnerID = cs.Metadata[MetadataOwnerID]
	}
	out.ProductName = cs.Metadata[MetadataProductName]
	return out
}
