package payment

import "context"

// EventCheckoutSessionCompleted is the only event type that produces an order.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// Metadata keys attached to every checkout session.
const (
	MetadataOwnerID     = "ownerId"
	MetadataProductName = "productName"
)

// Gateway is the payment provider as seen by the checkout and webhook services.
type Gateway interface {
	// CreateCheckoutSession opens a hosted checkout for the given line items.
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)

	// ParseWebhook verifies the signature over the raw payload and decodes the event.
	// A bad signature returns an error matching model.ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

// SessionRequest describes the checkout session to open.
type SessionRequest struct {
	OwnerID     string
	ProductName string
	Currency    string
	LineItems   []LineItem
	SuccessURL  string
	CancelURL   string
}

// LineItem is one provider price and its quantity.
type LineItem struct {
	PriceOfferID string
	Quantity     int64
}

// Session is a hosted checkout created by the provider.
type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook event. Session is set only for checkout
// session events whose payload decoded cleanly.
type Event struct {
	ID      string
	Type    string
	Session *CompletedSession
}

// CompletedSession carries the fields copied into an order.
type CompletedSession struct {
	ID                 string
	OwnerID            string
	ProductName        string
	AmountTotal        int64
	Currency           string
	PaymentStatus      string
	PaymentIntentID    string
	CustomerEmail      string
	CustomerName       string
	PaymentMethodTypes []string
}
