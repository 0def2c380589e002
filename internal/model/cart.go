package model

import "time"

// Cart is a shopper's basket, stored as one document per owner.
type Cart struct {
	OwnerID     string     `json:"ownerId" bson:"owner_id"`
	Items       []CartItem `json:"items" bson:"items"`
	TotalAmount int64      `json:"totalAmount" bson:"total_amount"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

// CartItem is a line in a cart. ProductName is unique within one cart.
type CartItem struct {
	ProductName  string `json:"productName" bson:"product_name"`
	PriceOfferID string `json:"priceOfferId" bson:"price_offer_id"`
	Quantity     int64  `json:"quantity" bson:"quantity"`
}

// NewEmptyCart returns the cart view used when an owner has no stored cart.
func NewEmptyCart(ownerID string) *Cart {
	return &Cart{
		OwnerID: ownerID,
		Items:   []CartItem{},
	}
}

// IsEmpty reports whether the cart has nothing to check out.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// AddOne increments the line for productName, or appends a new line with quantity 1.
func (c *Cart) AddOne(productName, priceOfferID string) {
	for i := range c.Items {
		if c.Items[i].ProductName == productName {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductName:  productName,
		PriceOfferID: priceOfferID,
		Quantity:     1,
	})
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int64 {
	if c == nil {
		return 0
	}
	var n int64
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
