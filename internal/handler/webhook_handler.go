package handler

import (
	"errors"
	"io"
	"net/http"

	"mini-checkout/internal/model"
	"mini-checkout/internal/service"

	"github.com/rs/zerolog"
)

// maxWebhookBytes caps the webhook body, matching the provider's own limit.
const maxWebhookBytes = 65536

// SignatureHeader carries the provider's HMAC over the raw body.
const SignatureHeader = "Stripe-Signature"

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	service service.WebhookService
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service service.WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

type webhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

// Handle handles POST /webhook requests. The body is passed on byte for byte
// since the signature covers the exact payload.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeWebhookProcessing, "failed to read request body", h.logger)
		return
	}

	outcome, err := h.service.HandleEvent(r.Context(), payload, r.Header.Get(SignatureHeader))
	if err != nil {
		if errors.Is(err, model.ErrInvalidSignature) {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidSignature, model.ErrInvalidSignature.Message, h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeWebhookProcessing, model.ErrWebhookProcessing.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{Received: true, Outcome: string(outcome)})
}
