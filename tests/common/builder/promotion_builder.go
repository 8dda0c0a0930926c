package builder

import (
	"time"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/pkg/ptr"

	"github.com/google/uuid"
)

// PromotionBuilder assembles a valid product promotion by default; tests
// mutate single fields to probe validation.
type PromotionBuilder struct {
	promoType  promotion.Type
	start      time.Time
	end        time.Time
	productID  *uuid.UUID
	shopID     *uuid.UUID
	merchantID uuid.UUID
	userID     uuid.UUID
}

func NewPromotionBuilder() *PromotionBuilder {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &PromotionBuilder{
		promoType:  promotion.TypeProduct,
		start:      start,
		end:        start.AddDate(0, 0, 6),
		productID:  ptr.Ptr(uuid.New()),
		merchantID: uuid.New(),
		userID:     uuid.New(),
	}
}

func (b *PromotionBuilder) With(mutate func(*PromotionBuilder)) *PromotionBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *PromotionBuilder) WithType(t promotion.Type) *PromotionBuilder {
	b.promoType = t
	return b
}

func (b *PromotionBuilder) WithDates(start, end time.Time) *PromotionBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *PromotionBuilder) WithProductID(id *uuid.UUID) *PromotionBuilder {
	b.productID = id
	return b
}

func (b *PromotionBuilder) WithShopID(id *uuid.UUID) *PromotionBuilder {
	b.shopID = id
	return b
}

func (b *PromotionBuilder) WithMerchantID(id uuid.UUID) *PromotionBuilder {
	b.merchantID = id
	return b
}

func (b *PromotionBuilder) WithUserID(id uuid.UUID) *PromotionBuilder {
	b.userID = id
	return b
}

func (b *PromotionBuilder) BuildDomain() (*promotion.Promotion, error) {
	dates, err := promotion.NewDateRange(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return promotion.NewPromotion(b.promoType, dates, b.productID, b.shopID, b.merchantID, b.userID)
}
