package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartCollection is the MongoDB collection holding one document per cart owner.
const CartCollection = "carts"

// cartRepository implements the CartRepository interface using MongoDB.
type cartRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewCartRepository creates a new MongoDB-backed cart repository.
func NewCartRepository(db *mongo.Database, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		collection: db.Collection(CartCollection),
		logger:     logger.With().Str("repository", "cart").Logger(),
	}
}

// EnsureCartIndexes creates the unique owner index backing the one-cart-per-owner rule.
func EnsureCartIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CartCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("owner_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}

// Get returns the owner's cart, or nil if the owner has none.
func (r *cartRepository) Get(ctx context.Context, ownerID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.collection.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("owner_id", ownerID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	return &cart, nil
}

// Save replaces the owner's cart document, creating it if needed.
// Concurrent saves for one owner are last-write-wins.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	now := time.Now().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"owner_id": cart.OwnerID}, cart, opts)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("owner_id", cart.OwnerID).
			Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().
		Str("owner_id", cart.OwnerID).
		Int("line_count", len(cart.Items)).
		Msg("cart saved successfully")

	return nil
}

// Delete removes the owner's cart. Deleting a missing cart is not an error.
func (r *cartRepository) Delete(ctx context.Context, ownerID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		r.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	r.logger.Debug().
		Str("owner_id", ownerID).
		Int64("deleted", result.DeletedCount).
		Msg("cart deleted")

	return nil
}
