package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"promo-slot-engine/internal/pkg/config"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/commands"
)

var (
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrInvalidResponse    = errs.New("invalid payment gateway response")
	ErrPaymentRejected    = errs.New("payment gateway rejected the request")
)

// PaymentClient talks to the external payment gateway over HTTP. The request
// for a redirect URL is best-effort: callers treat a failure as recoverable
// and retry through the payment-url endpoint.
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPaymentClient(cfg config.PaymentConfig) *PaymentClient {
	return &PaymentClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ commands.PaymentGateway = (*PaymentClient)(nil)

type paymentURLRequest struct {
	TransactionID string `json:"transaction_id"`
	PromotionID   string `json:"promotion_id"`
	UserID        string `json:"user_id"`
	AmountCents   int64  `json:"amount_cents"`
}

type paymentURLResponse struct {
	PaymentURL string `json:"payment_url"`
}

func (c *PaymentClient) RequestPaymentURL(ctx context.Context, req commands.PaymentRequest) (string, error) {
	body, err := json.Marshal(paymentURLRequest{
		TransactionID: req.TransactionID.String(),
		PromotionID:   req.PromotionID.String(),
		UserID:        req.UserID.String(),
		AmountCents:   req.AmountCents,
	})
	if err != nil {
		return "", errs.Wrap(err, "marshal payment request")
	}

	url := c.baseURL + "/v1/payment-urls"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(err, "create payment request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("payment gateway request failed",
			"transaction_id", req.TransactionID.String(),
			"error", err.Error())
		return "", errs.Mark(err, ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// continue
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		respBody, _ := io.ReadAll(resp.Body)
		return "", errs.Mark(fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)), ErrPaymentRejected)
	default:
		slog.Error("payment gateway returned unexpected status",
			"transaction_id", req.TransactionID.String(),
			"status", resp.StatusCode)
		return "", errs.Mark(fmt.Errorf("unexpected status %d", resp.StatusCode), ErrGatewayUnavailable)
	}

	var payload paymentURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errs.Mark(err, ErrInvalidResponse)
	}
	if payload.PaymentURL == "" {
		return "", errs.Mark(errs.New("empty payment_url"), ErrInvalidResponse)
	}
	return payload.PaymentURL, nil
}
