package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffer_DisplayPrice(t *testing.T) {
	tests := []struct {
		name     string
		offer    Offer
		expected string
	}{
		{name: "Dollars", offer: Offer{UnitAmount: 1000, Currency: "usd"}, expected: "$10.00"},
		{name: "Cents", offer: Offer{UnitAmount: 1999, Currency: "usd"}, expected: "$19.99"},
		{name: "Euro", offer: Offer{UnitAmount: 250, Currency: "eur"}, expected: "€2.50"},
		{name: "Pound", offer: Offer{UnitAmount: 5, Currency: "gbp"}, expected: "£0.05"},
		{name: "Other currency", offer: Offer{UnitAmount: 1200, Currency: "chf"}, expected: "12.00 chf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.offer.DisplayPrice())
		})
	}
}
