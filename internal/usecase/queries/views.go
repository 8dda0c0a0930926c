package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type AvailabilityView struct {
	Type           string   `json:"type"`
	WindowStart    string   `json:"window_start"`
	WindowEnd      string   `json:"window_end"`
	BookedDays     []string `json:"booked_days"`
	AvailableDays  []string `json:"available_days"`
	FullyAvailable bool     `json:"fully_available"`
}

type CostView struct {
	Type             string `json:"type"`
	Days             int    `json:"days"`
	DailyChargeCents int64  `json:"daily_charge_cents"`
	AmountCents      int64  `json:"amount_cents"`
}

type PromotionView struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	ProductID     *uuid.UUID `json:"product_id,omitempty"`
	ShopID        *uuid.UUID `json:"shop_id,omitempty"`
	MerchantID    uuid.UUID  `json:"merchant_id"`
	UserID        uuid.UUID  `json:"user_id"`
	InvoiceID     *uuid.UUID `json:"invoice_id,omitempty"`
	InvoiceStatus *string    `json:"invoice_status,omitempty"`
	AmountCents   *int64     `json:"amount_cents,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PromotionListItem struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}
