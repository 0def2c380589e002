package catalog

import (
	"fmt"
	"strings"

	"mini-checkout/internal/model"
)

// offerSet implements Catalog with an ordered slice plus an id index.
type offerSet struct {
	offers []model.Offer
	byID   map[string]int
}

// NewOfferSet builds a catalog from offers, rejecting blank or repeated ids and names.
func NewOfferSet(offers []model.Offer) (Catalog, error) {
	set := &offerSet{
		offers: make([]model.Offer, 0, len(offers)),
		byID:   make(map[string]int, len(offers)),
	}
	names := make(map[string]struct{}, len(offers))

	for i, offer := range offers {
		offer.ID = strings.TrimSpace(offer.ID)
		offer.ProductName = strings.TrimSpace(offer.ProductName)
		offer.Currency = strings.ToLower(offer.Currency)

		if offer.ID == "" {
			return nil, fmt.Errorf("offer %d: id is required", i)
		}
		if offer.ProductName == "" {
			return nil, fmt.Errorf("offer %s: product name is required", offer.ID)
		}
		if offer.UnitAmount < 0 {
			return nil, fmt.Errorf("offer %s: unit amount must not be negative", offer.ID)
		}
		if _, dup := set.byID[offer.ID]; dup {
			return nil, fmt.Errorf("offer %s: duplicate id", offer.ID)
		}
		if _, dup := names[offer.ProductName]; dup {
			return nil, fmt.Errorf("offer %s: duplicate product name %q", offer.ID, offer.ProductName)
		}

		set.byID[offer.ID] = len(set.offers)
		names[offer.ProductName] = struct{}{}
		set.offers = append(set.offers, offer)
	}

	return set, nil
}

// FromOfferIDs builds the default two-product storefront from bare provider price ids.
// Product n is priced at n × 10.00 in currency.
func FromOfferIDs(ids []string, currency string) (Catalog, error) {
	offers := make([]model.Offer, 0, len(ids))
	for i, id := range ids {
		offers = append(offers, model.Offer{
			ID:          id,
			ProductName: fmt.Sprintf("Product %d", i+1),
			UnitAmount:  int64(i+1) * 1000,
			Currency:    currency,
		})
	}
	return NewOfferSet(offers)
}

func (s *offerSet) Offers() []model.Offer {
	out := make([]model.Offer, len(s.offers))
	copy(out, s.offers)
	return out
}

func (s *offerSet) Lookup(offerID string) (model.Offer, bool) {
	i, ok := s.byID[offerID]
	if !ok {
		return model.Offer{}, false
	}
	return s.offers[i], true
}

func (s *offerSet) Size() int {
	return len(s.offers)
}
