package service

import (
	"context"

	"mini-checkout/internal/model"
)

// Outcome is the result of a verified webhook delivery. Every outcome is acknowledged with 200.
type Outcome string

const (
	// OutcomeRecorded means a new order was written and the cart cleared.
	OutcomeRecorded Outcome = "recorded"
	// OutcomeDuplicate means an order for the session already existed.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeIgnored means the event type is not acted on.
	OutcomeIgnored Outcome = "ignored"
)

// CartService defines operations on a shopper's cart.
type CartService interface {
	// AddItem adds one unit of the offer to the owner's cart, creating the cart if needed.
	AddItem(ctx context.Context, ownerID, productName, priceOfferID string) (*model.Cart, error)

	// GetCart returns the owner's cart, or an empty cart if none is stored.
	GetCart(ctx context.Context, ownerID string) (*model.Cart, error)

	// ClearCart deletes the owner's cart. Clearing a missing cart is not an error.
	ClearCart(ctx context.Context, ownerID string) error
}

// CheckoutService turns a cart into a hosted payment page.
type CheckoutService interface {
	// StartCheckout opens a checkout session for the owner's cart and returns its URL.
	StartCheckout(ctx context.Context, ownerID string) (string, error)
}

// WebhookService processes payment provider callbacks.
type WebhookService interface {
	// HandleEvent verifies and processes one webhook delivery.
	HandleEvent(ctx context.Context, payload []byte, signature string) (Outcome, error)
}

// OrderService defines read access to the order ledger.
type OrderService interface {
	// List retrieves orders with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// GetBySessionID retrieves the order recorded for a checkout session.
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
}
