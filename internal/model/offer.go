package model

import (
	"fmt"
	"strings"
)

// Offer is a purchasable item as priced by the payment provider.
type Offer struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	UnitAmount  int64  `json:"unitAmount"`
	Currency    string `json:"currency"`
}

// DisplayPrice formats the unit amount for the storefront, e.g. "$10.00".
func (o Offer) DisplayPrice() string {
	return FormatAmount(o.UnitAmount, o.Currency)
}

// FormatAmount renders an amount in minor units with its currency symbol.
// Currencies without a known symbol are suffixed with their code.
func FormatAmount(amount int64, currency string) string {
	symbol := ""
	switch strings.ToLower(currency) {
	case "usd", "":
		symbol = "$"
	case "eur":
		symbol = "€"
	case "gbp":
		symbol = "£"
	}
	formatted := fmt.Sprintf("%d.%02d", amount/100, amount%100)
	if symbol == "" {
		return formatted + " " + currency
	}
	return symbol + formatted
}
