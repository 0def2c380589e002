package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

const completedEventPayload = `{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "amount_total": 3000,
      "currency": "usd",
      "payment_status": "paid",
      "payment_intent": "pi_123",
      "customer_details": {"email": "ann@example.com", "name": "Ann"},
      "payment_method_types": ["card"],
      "client_reference_id": "default_user",
      "metadata": {"ownerId": "default_user", "productName": "Product 1, Product 2"}
    }
  }
}`

func sign(payload, secret string) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Header
}

// fakeStripe starts an HTTP server standing in for the Stripe API.
func fakeStripe(t *testing.T, handler http.HandlerFunc) stripe.Backend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
}

func TestStripeGateway_CreateCheckoutSession(t *testing.T) {
	backend := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "price_1", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "price_2", r.PostForm.Get("line_items[1][price]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[1][quantity]"))
		assert.Equal(t, "default_user", r.PostForm.Get("client_reference_id"))
		assert.Equal(t, "default_user", r.PostForm.Get("metadata[ownerId]"))
		assert.Equal(t, "Product 1, Product 2", r.PostForm.Get("metadata[productName]"))
		assert.Equal(t, "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.example.com/cancel", r.PostForm.Get("cancel_url"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	})

	gw := NewStripeGateway("sk_test_123", testWebhookSecret, backend, zerolog.Nop())

	session, err := gw.CreateCheckoutSession(context.Background(), SessionRequest{
		OwnerID:     "default_user",
		ProductName: "Product 1, Product 2",
		Currency:    "usd",
		LineItems: []LineItem{
			{PriceOfferID: "price_1", Quantity: 2},
			{PriceOfferID: "price_2", Quantity: 1},
		},
		SuccessURL: "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example.com/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)
}

func TestStripeGateway_CreateCheckoutSession_ProviderError(t *testing.T) {
	backend := fakeStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such price: 'price_missing'"}}`))
	})

	gw := NewStripeGateway("sk_test_123", testWebhookSecret, backend, zerolog.Nop())

	session, err := gw.CreateCheckoutSession(context.Background(), SessionRequest{
		OwnerID:   "default_user",
		LineItems: []LineItem{{PriceOfferID: "price_missing", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "No such price")
}

func TestStripeGateway_ParseWebhook_Completed(t *testing.T) {
	gw := NewStripeGateway("sk_test_123", testWebhookSecret, nil, zerolog.Nop())

	event, err := gw.ParseWebhook([]byte(completedEventPayload), sign(completedEventPayload, testWebhookSecret))

	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventCheckoutSessionCompleted, event.Type)
	require.NotNil(t, event.Session)
	assert.Equal(t, CompletedSession{
		ID:                 "cs_test_1",
		OwnerID:            "default_user",
		ProductName:        "Product 1, Product 2",
		AmountTotal:        3000,
		Currency:           "usd",
		PaymentStatus:      "paid",
		PaymentIntentID:    "pi_123",
		CustomerEmail:      "ann@example.com",
		CustomerName:       "Ann",
		PaymentMethodTypes: []string{"card"},
	}, *event.Session)
}

func TestStripeGateway_ParseWebhook_OwnerFromMetadata(t *testing.T) {
	payload := `{"id":"evt_2","object":"event","type":"checkout.session.completed",` +
		`"data":{"object":{"id":"cs_test_2","object":"checkout.session","metadata":{"ownerId":"shopper_7"}}}}`
	gw := NewStripeGateway("sk_test_123", testWebhookSecret, nil, zerolog.Nop())

	event, err := gw.ParseWebhook([]byte(payload), sign(payload, testWebhookSecret))

	require.NoError(t, err)
	require.NotNil(t, event.Session)
	assert.Equal(t, "shopper_7", event.Session.OwnerID)
	assert.Empty(t, event.Session.PaymentIntentID)
}

func TestStripeGateway_ParseWebhook_OtherEventType(t *testing.T) {
	payload := `{"id":"evt_3","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1","object":"payment_intent"}}}`
	gw := NewStripeGateway("sk_test_123", testWebhookSecret, nil, zerolog.Nop())

	event, err := gw.ParseWebhook([]byte(payload), sign(payload, testWebhookSecret))

	require.NoError(t, err)
	assert.Equal(t, "payment_intent.created", event.Type)
	assert.Nil(t, event.Session)
}

func TestStripeGateway_ParseWebhook_InvalidSignature(t *testing.T) {
	gw := NewStripeGateway("sk_test_123", testWebhookSecret, nil, zerolog.Nop())

	tests := []struct {
		name   string
		header string
	}{
		{name: "Wrong secret", header: sign(completedEventPayload, "whsec_other")},
		{name: "Missing header", header: ""},
		{name: "Garbage header", header: "t=1,v1=deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := gw.ParseWebhook([]byte(completedEventPayload), tt.header)

			assert.Nil(t, event)
			assert.ErrorIs(t, err, model.ErrInvalidSignature)
		})
	}
}

func TestStripeGateway_ParseWebhook_TamperedBody(t *testing.T) {
	gw := NewStripeGateway("sk_test_123", testWebhookSecret, nil, zerolog.Nop())
	header := sign(completedEventPayload, testWebhookSecret)

	tampered := []byte(completedEventPayload + " ")
	event, err := gw.ParseWebhook(tampered, header)

	assert.Nil(t, event)
	assert.ErrorIs(t, err, model.ErrInvalidSignature)
}
