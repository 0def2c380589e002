package handler

import (
	"errors"
	"net/http"

	"mini-checkout/internal/catalog"
	"mini-checkout/internal/model"
	"mini-checkout/internal/service"

	"github.com/rs/zerolog"
)

// StorefrontHandler serves the product listing and the cart pages.
type StorefrontHandler struct {
	catalog  catalog.Catalog
	carts    service.CartService
	owner    OwnerFunc
	currency string
	logger   zerolog.Logger
}

// NewStorefrontHandler creates a new storefront handler.
func NewStorefrontHandler(
	cat catalog.Catalog,
	carts service.CartService,
	owner OwnerFunc,
	currency string,
	logger zerolog.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:  cat,
		carts:    carts,
		owner:    owner,
		currency: currency,
		logger:   logger.With().Str("handler", "storefront").Logger(),
	}
}

// Index handles GET / requests.
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := storefrontPage{Offers: h.catalog.Offers()}

	// The item count is decoration; a cart store outage must not take the listing down.
	if cart, err := h.carts.GetCart(r.Context(), h.owner(r)); err == nil {
		page.Items = cart.ItemCount()
	} else {
		h.logger.Warn().Err(err).Msg("failed to load cart for storefront")
	}

	renderPage(w, http.StatusOK, "storefront.html", page, h.logger)
}

// AddToCart handles POST /add-to-cart requests. The original form field
// name priceId is accepted as an alias of priceOfferId.
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid form body", h.logger)
		return
	}

	productName := r.PostForm.Get("productName")
	priceOfferID := r.PostForm.Get("priceOfferId")
	if priceOfferID == "" {
		priceOfferID = r.PostForm.Get("priceId")
	}

	if _, err := h.carts.AddItem(r.Context(), h.owner(r), productName, priceOfferID); err != nil {
		h.renderCartError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ViewCart handles GET /cart requests.
func (h *StorefrontHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), h.owner(r))
	if err != nil {
		h.renderCartError(w, err)
		return
	}

	if cart.IsEmpty() {
		renderPage(w, http.StatusOK, "empty.html", nil, h.logger)
		return
	}

	renderPage(w, http.StatusOK, "cart.html", cartPage{
		Cart:  cart,
		Total: model.FormatAmount(cart.TotalAmount, h.currency),
	}, h.logger)
}

func (h *StorefrontHandler) renderCartError(w http.ResponseWriter, err error) {
	switch model.CodeOf(err) {
	case model.ErrCodeMissingField, model.ErrCodeUnknownOffer:
		var de *model.DomainError
		errors.As(err, &de)
		renderError(w, http.StatusBadRequest, de.Code, de.Message, h.logger)
	case model.ErrCodePersistence:
		renderError(w, http.StatusInternalServerError, model.ErrCodePersistence, "failed to access cart", h.logger)
	default:
		renderError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", h.logger)
	}
}
