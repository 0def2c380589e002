package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeUnknownOffer      = "UNKNOWN_OFFER"
	ErrCodeCartEmpty         = "CART_EMPTY"
	ErrCodePaymentGateway    = "PAYMENT_GATEWAY_ERROR"
	ErrCodeInvalidSignature  = "INVALID_SIGNATURE"
	ErrCodePersistence       = "PERSISTENCE_ERROR"
	ErrCodeWebhookProcessing = "WEBHOOK_PROCESSING_FAILED"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business error carrying a stable code and, optionally, its cause.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code, so a wrapped PaymentGatewayError
// still satisfies errors.Is(err, ErrPaymentGateway).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingField      = NewDomainError(ErrCodeMissingField, "productName and priceOfferId are required")
	ErrUnknownOffer      = NewDomainError(ErrCodeUnknownOffer, "Offer is not sold by this store")
	ErrCartEmpty         = NewDomainError(ErrCodeCartEmpty, "Your cart is empty.")
	ErrInvalidSignature  = NewDomainError(ErrCodeInvalidSignature, "Webhook signature verification failed")
	ErrPaymentGateway    = NewDomainError(ErrCodePaymentGateway, "Payment provider request failed")
	ErrPersistence       = NewDomainError(ErrCodePersistence, "Database operation failed")
	ErrWebhookProcessing = NewDomainError(ErrCodeWebhookProcessing, "Webhook event could not be processed")
	ErrDuplicateOrder    = errors.New("order already recorded for checkout session")
)

// NewPaymentGatewayError wraps a payment provider failure.
func NewPaymentGatewayError(err error) *DomainError {
	return &DomainError{Code: ErrCodePaymentGateway, Message: ErrPaymentGateway.Message, Err: err}
}

// NewPersistenceError wraps a database failure for the named operation.
func NewPersistenceError(op string, err error) *DomainError {
	return &DomainError{Code: ErrCodePersistence, Message: "failed to " + op, Err: err}
}

// NewWebhookProcessingError wraps a failure that happened after the event was verified.
func NewWebhookProcessingError(err error) *DomainError {
	return &DomainError{Code: ErrCodeWebhookProcessing, Message: ErrWebhookProcessing.Message, Err: err}
}

// CodeOf returns the domain code carried by err, or ErrCodeInternalError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}
