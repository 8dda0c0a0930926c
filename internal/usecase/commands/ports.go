package commands

import (
	"context"
	"time"

	"promo-slot-engine/internal/domain/promotion"

	"github.com/google/uuid"
)

// PaymentGateway requests a hosted payment URL for a pending transaction.
// Implementations must honor the context deadline; gateway outages are
// reported as errors and never block the surrounding reservation.
type PaymentGateway interface {
	RequestPaymentURL(ctx context.Context, req PaymentRequest) (string, error)
}

type PaymentRequest struct {
	TransactionID uuid.UUID
	PromotionID   uuid.UUID
	UserID        uuid.UUID
	AmountCents   int64
}

type CreatePromotionParams struct {
	Type            promotion.Type
	ProductID       *uuid.UUID
	ShopID          *uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	RequestedStatus promotion.Status
}

type UpdatePromotionParams struct {
	StartDate       *time.Time
	EndDate         *time.Time
	RequestedStatus promotion.Status
}

// PromotionResult is returned by the lifecycle commands. PaymentURL is only
// set when a confirmation intent reached the gateway successfully; a gateway
// failure returns this result alongside ErrPaymentGatewayUnavailable so the
// caller can surface the persisted reservation anyway.
type PromotionResult struct {
	PromotionID   uuid.UUID
	Status        promotion.Status
	InvoiceID     *uuid.UUID
	TransactionID *uuid.UUID
	AmountCents   *int64
	PaymentURL    string
}

type ConfirmPaymentResult struct {
	PromotionID uuid.UUID
	Status      promotion.Status
	AlreadyPaid bool
}
