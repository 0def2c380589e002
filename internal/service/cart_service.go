package service

import (
	"context"
	"strings"

	"mini-checkout/internal/catalog"
	"mini-checkout/internal/model"
	"mini-checkout/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	catalog  catalog.Catalog
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, cat catalog.Catalog, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  cat,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) AddItem(ctx context.Context, ownerID, productName, priceOfferID string) (*model.Cart, error) {
	productName = strings.TrimSpace(productName)
	priceOfferID = strings.TrimSpace(priceOfferID)
	if productName == "" || priceOfferID == "" {
		return nil, model.ErrMissingField
	}

	offer, ok := s.catalog.Lookup(priceOfferID)
	if !ok {
		s.logger.Warn().
			Str("owner_id", ownerID).
			Str("price_offer_id", priceOfferID).
			Msg("rejected unknown offer")
		return nil, model.ErrUnknownOffer
	}

	// Lines are named by the catalog; the submitted name only has to be present.
	if productName != offer.ProductName {
		s.logger.Debug().
			Str("submitted_name", productName).
			Str("product_name", offer.ProductName).
			Str("price_offer_id", priceOfferID).
			Msg("product name replaced with catalog name")
	}

	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, model.NewPersistenceError("load cart", err)
	}
	if cart == nil {
		cart = model.NewEmptyCart(ownerID)
	}

	cart.AddOne(offer.ProductName, offer.ID)
	cart.TotalAmount = s.total(cart)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, model.NewPersistenceError("save cart", err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Str("product_name", offer.ProductName).
		Int64("item_count", cart.ItemCount()).
		Msg("item added to cart")

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, ownerID string) (*model.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, model.NewPersistenceError("load cart", err)
	}
	if cart == nil {
		return model.NewEmptyCart(ownerID), nil
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, ownerID string) error {
	if err := s.cartRepo.Delete(ctx, ownerID); err != nil {
		return model.NewPersistenceError("clear cart", err)
	}
	s.logger.Debug().Str("owner_id", ownerID).Msg("cart cleared")
	return nil
}

// total prices the cart from the catalog. Lines whose offer has left the
// catalog contribute nothing.
func (s *cartService) total(cart *model.Cart) int64 {
	var total int64
	for _, item := range cart.Items {
		if offer, ok := s.catalog.Lookup(item.PriceOfferID); ok {
			total += offer.UnitAmount * item.Quantity
		}
	}
	return total
}
