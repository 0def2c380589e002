package handler

import (
	"encoding/json"
	"net/http"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
)

// OwnerFunc resolves the cart owner for a request.
type OwnerFunc func(r *http.Request) string

// StaticOwner returns an OwnerFunc that always yields ownerID.
func StaticOwner(ownerID string) OwnerFunc {
	return func(*http.Request) string { return ownerID }
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}
