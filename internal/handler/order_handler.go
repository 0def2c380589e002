package handler

import (
	"net/http"
	"strconv"

	"mini-checkout/internal/model"
	"mini-checkout/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OrderHandler handles order ledger HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests with pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := service.DefaultPageLimit
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid offset parameter", h.logger)
			return
		}
	}

	// Report the page that is actually served
	limit, offset = service.ClampPage(limit, offset)

	orders, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodePersistence, "failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderListResponse{Orders: orders, Limit: limit, Offset: offset})
}

// GetBySessionID handles GET /api/orders/{sessionId} requests.
func (h *OrderHandler) GetBySessionID(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "session ID is required", h.logger)
		return
	}

	order, err := h.service.GetBySessionID(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodePersistence, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
