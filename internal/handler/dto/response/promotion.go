package response

import (
	"promo-slot-engine/internal/usecase/commands"
	"promo-slot-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type PromotionResponse struct {
	ID              uuid.UUID  `json:"id"`
	Status          string     `json:"status"`
	InvoiceID       *uuid.UUID `json:"invoice_id,omitempty"`
	TransactionID   *uuid.UUID `json:"transaction_id,omitempty"`
	AmountCents     *int64     `json:"amount_cents,omitempty"`
	PaymentURL      string     `json:"payment_url,omitempty"`
	PaymentURLError string     `json:"payment_url_error,omitempty"`
}

func FromPromotionResult(r *commands.PromotionResult) *PromotionResponse {
	return &PromotionResponse{
		ID:            r.PromotionID,
		Status:        r.Status.String(),
		InvoiceID:     r.InvoiceID,
		TransactionID: r.TransactionID,
		AmountCents:   r.AmountCents,
		PaymentURL:    r.PaymentURL,
	}
}

type PaymentURLResponse struct {
	PaymentURL string `json:"payment_url"`
}

type PromotionDetailResponse struct {
	*queries.PromotionView
}

func FromPromotionView(v *queries.PromotionView) *PromotionDetailResponse {
	return &PromotionDetailResponse{PromotionView: v}
}

type PromotionListResponse struct {
	Promotions []queries.PromotionListItem `json:"promotions"`
}

func FromPromotionList(items []queries.PromotionListItem) *PromotionListResponse {
	return &PromotionListResponse{Promotions: items}
}
