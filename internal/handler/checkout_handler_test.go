package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mini-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckoutHandler_Checkout(t *testing.T) {
	tests := []struct {
		name             string
		mockURL          string
		mockError        error
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name:             "Redirects to provider",
			mockURL:          "https://checkout.stripe.com/c/pay/cs_test_1",
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "https://checkout.stripe.com/c/pay/cs_test_1",
		},
		{
			name:           "Empty cart",
			mockError:      model.ErrCartEmpty,
			expectedStatus: http.StatusOK,
			expectedBody:   "Your cart is empty.",
		},
		{
			name:           "Gateway failure",
			mockError:      model.NewPaymentGatewayError(errors.New("No such price: 'price_1'")),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   "No such price",
		},
		{
			name:           "Cart store failure",
			mockError:      model.NewPersistenceError("load cart", errors.New("down")),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Unexpected error",
			mockError:      errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := new(MockCheckoutService)
			h := NewCheckoutHandler(checkout, StaticOwner("default_user"), zerolog.Nop())
			checkout.On("StartCheckout", mock.Anything, "default_user").Return(tt.mockURL, tt.mockError)

			w := httptest.NewRecorder()
			h.Checkout(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			checkout.AssertExpectations(t)
		})
	}
}
