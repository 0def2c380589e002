package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type storefrontPage struct {
	Offers []model.Offer
	Items  int64
}

type cartPage struct {
	Cart  *model.Cart
	Total string
}

type successPage struct {
	SessionID string
}

type errorPage struct {
	Status  int
	Message string
}

// renderPage executes the named template into a buffer first so a template
// failure never leaves a half-written 200 behind.
func renderPage(w http.ResponseWriter, status int, name string, data any, logger zerolog.Logger) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error().Err(err).Str("template", name).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders the HTML error page used by the storefront routes.
func renderError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	renderPage(w, status, "error.html", errorPage{Status: status, Message: message}, logger)
}

// PageHandler serves the static checkout result pages.
type PageHandler struct {
	logger zerolog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		logger: logger.With().Str("handler", "page").Logger(),
	}
}

// Success handles GET /success. It has no side effects; orders are recorded by the webhook.
func (h *PageHandler) Success(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "success.html", successPage{SessionID: r.URL.Query().Get("session_id")}, h.logger)
}

// Cancel handles GET /cancel.
func (h *PageHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "cancel.html", nil, h.logger)
}
