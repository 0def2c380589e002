package repository

import (
	"context"

	"mini-checkout/internal/model"
)

// CartRepository defines the interface for cart document access.
type CartRepository interface {
	// Get returns the owner's cart, or nil if the owner has none.
	Get(ctx context.Context, ownerID string) (*model.Cart, error)

	// Save replaces the owner's cart document, creating it if needed.
	Save(ctx context.Context, cart *model.Cart) error

	// Delete removes the owner's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, ownerID string) error
}

// OrderRepository defines the interface for the append-only order ledger.
type OrderRepository interface {
	// Create inserts a new order. Returns model.ErrDuplicateOrder if an order
	// already exists for the same source session.
	Create(ctx context.Context, order *model.Order) error

	// GetBySessionID returns the order recorded for a checkout session, or nil.
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error)

	// List returns orders, newest first.
	List(ctx context.Context, limit, offset int) ([]model.Order, error)
}
