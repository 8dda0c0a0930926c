//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"promo-slot-engine/internal/infra/gateway"
	"promo-slot-engine/internal/pkg/config"
	"promo-slot-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(serverURL string) *gateway.PaymentClient {
	return gateway.NewPaymentClient(config.PaymentConfig{
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	})
}

func samplePaymentRequest() commands.PaymentRequest {
	return commands.PaymentRequest{
		TransactionID: uuid.New(),
		PromotionID:   uuid.New(),
		UserID:        uuid.New(),
		AmountCents:   17500,
	}
}

func TestRequestPaymentURL(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the gateway's redirect URL", func(t *testing.T) {
		req := samplePaymentRequest()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment-urls", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, req.TransactionID.String(), body["transaction_id"])
			assert.Equal(t, float64(17500), body["amount_cents"])

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{
				"payment_url": "https://pay.example.com/session/abc123",
			})
		}))
		defer srv.Close()

		url, err := newClient(srv.URL).RequestPaymentURL(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/session/abc123", url)
	})

	t.Run("server error maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).RequestPaymentURL(ctx, samplePaymentRequest())
		require.ErrorIs(t, err, gateway.ErrGatewayUnavailable)
	})

	t.Run("unreachable gateway maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := newClient(srv.URL).RequestPaymentURL(ctx, samplePaymentRequest())
		require.ErrorIs(t, err, gateway.ErrGatewayUnavailable)
	})

	t.Run("client error maps to rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": "amount below minimum"})
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).RequestPaymentURL(ctx, samplePaymentRequest())
		require.ErrorIs(t, err, gateway.ErrPaymentRejected)
	})

	t.Run("missing payment_url in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).RequestPaymentURL(ctx, samplePaymentRequest())
		require.ErrorIs(t, err, gateway.ErrInvalidResponse)
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).RequestPaymentURL(ctx, samplePaymentRequest())
		require.ErrorIs(t, err, gateway.ErrInvalidResponse)
	})
}
