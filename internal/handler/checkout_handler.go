package handler

import (
	"errors"
	"net/http"

	"mini-checkout/internal/model"
	"mini-checkout/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler sends the shopper to the payment provider.
type CheckoutHandler struct {
	service service.CheckoutService
	owner   OwnerFunc
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, owner OwnerFunc, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		owner:   owner,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.StartCheckout(r.Context(), h.owner(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCartEmpty):
			renderPage(w, http.StatusOK, "empty.html", nil, h.logger)
		case errors.Is(err, model.ErrPaymentGateway):
			renderError(w, http.StatusBadGateway, model.ErrCodePaymentGateway, err.Error(), h.logger)
		case errors.Is(err, model.ErrPersistence):
			renderError(w, http.StatusInternalServerError, model.ErrCodePersistence, "failed to load cart", h.logger)
		default:
			renderError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", h.logger)
		}
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}
