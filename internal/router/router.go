package router

import (
	"net/http"

	"mini-checkout/internal/handler"
	"mini-checkout/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Storefront *handler.StorefrontHandler
	Checkout   *handler.CheckoutHandler
	Webhook    *handler.WebhookHandler
	Pages      *handler.PageHandler
	Orders     *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> Logging -> Metrics for every route
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Storefront
	r.Get("/", h.Storefront.Index)
	r.Post("/add-to-cart", h.Storefront.AddToCart)
	r.Get("/cart", h.Storefront.ViewCart)
	r.Post("/checkout", h.Checkout.Checkout)
	r.Get("/success", h.Pages.Success)
	r.Get("/cancel", h.Pages.Cancel)

	// Provider callback, authenticated by its signature
	r.Post("/webhook", h.Webhook.Handle)

	// Admin order ledger
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Use(middleware.APIKeyAuth(apiKey, logger))
		r.Get("/orders", h.Orders.List)
		r.Get("/orders/{sessionId}", h.Orders.GetBySessionID)
	})

	return r
}
