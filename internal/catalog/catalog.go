package catalog

import (
	"context"

	"mini-checkout/internal/model"
)

// Catalog is the read-only set of offers sold by the storefront.
type Catalog interface {
	// Offers returns every offer in display order.
	Offers() []model.Offer

	// Lookup returns the offer with the given provider price id.
	Lookup(offerID string) (model.Offer, bool)

	// Size returns the number of offers in the catalog.
	Size() int
}

// Loader defines the interface for loading a catalog document.
type Loader interface {
	// Load reads a JSON catalog document (optionally gzipped) and returns a Catalog.
	Load(ctx context.Context, path string) (Catalog, error)
}
