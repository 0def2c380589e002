package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is an append-only record of a paid checkout session.
type Order struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	SourceSessionID    string    `json:"sourceSessionId" db:"source_session_id"`
	OwnerID            string    `json:"ownerId" db:"owner_id"`
	ProductName        string    `json:"productName" db:"product_name"`
	Amount             int64     `json:"amount" db:"amount"`
	Currency           string    `json:"currency" db:"currency"`
	PaymentStatus      string    `json:"paymentStatus" db:"payment_status"`
	PaymentReferenceID string    `json:"paymentReferenceId" db:"payment_reference_id"`
	CustomerEmail      string    `json:"customerEmail" db:"customer_email"`
	CustomerName       string    `json:"customerName" db:"customer_name"`
	PaymentMethodKinds []string  `json:"paymentMethodKinds" db:"payment_method_kinds"`
	PurchasedAt        time.Time `json:"purchasedAt" db:"purchased_at"`
}

// OrderListResponse represents a page of the order ledger.
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
