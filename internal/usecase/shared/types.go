package shared

import (
	"time"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/domain/slotconfig"

	"github.com/google/uuid"
)

// Write-side snapshots keep command code off the read-side view types.

type SlotConfigSnapshot struct {
	Type             promotion.Type
	DailyCapacity    int
	DailyChargeCents int64
}

// Config rebuilds the domain slot configuration the snapshot was read from.
// Pricing goes through the domain entity, never raw snapshot fields.
func (s SlotConfigSnapshot) Config() (*slotconfig.Config, error) {
	return slotconfig.NewConfig(s.Type, s.DailyCapacity, s.DailyChargeCents)
}

type ProductSnapshot struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

type ShopSnapshot struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	ShopTypeID uuid.UUID
	Name       string
}

type PromotionSnapshot struct {
	ID         uuid.UUID
	Type       promotion.Type
	Status     promotion.Status
	StartDate  time.Time
	EndDate    time.Time
	ProductID  *uuid.UUID
	ShopID     *uuid.UUID
	MerchantID uuid.UUID
	UserID     uuid.UUID
}

type InvoiceSnapshot struct {
	ID          uuid.UUID
	PromotionID uuid.UUID
	AmountCents int64
	Status      billing.InvoiceStatus
}

type TransactionSnapshot struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	PromotionID uuid.UUID
	AmountCents int64
	Status      billing.TransactionStatus
}

// ScopeFilter narrows occupancy queries to the competing scope: the product
// category for Product promotions, the shop type for Shop promotions, nothing
// for Banner (global competition).
type ScopeFilter struct {
	CategoryID *uuid.UUID
	ShopTypeID *uuid.UUID
}

// SlotLockKey serializes capacity checks per (type, scope). The same key must
// be taken by every transaction that reads occupancy before writing a
// capacity-consuming row.
func SlotLockKey(t promotion.Type, scope ScopeFilter) string {
	switch {
	case t == promotion.TypeProduct && scope.CategoryID != nil:
		return "slot:product:" + scope.CategoryID.String()
	case t == promotion.TypeShop && scope.ShopTypeID != nil:
		return "slot:shop:" + scope.ShopTypeID.String()
	default:
		return "slot:" + t.String() + ":global"
	}
}
