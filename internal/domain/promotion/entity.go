package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrScopeRequired   = errors.New("promotion type requires a scope reference")
	ErrScopeNotAllowed = errors.New("promotion type does not take a scope reference")
	ErrOwnerRequired   = errors.New("promotion requires merchant and user ownership")
)

// Promotion is a reservation of dated advertising slots for one type and
// scope. While its status consumes capacity (Confirm or Published), every day
// of its range counts against the daily limit for that type and scope.
type Promotion struct {
	id         uuid.UUID
	promoType  Type
	status     Status
	dates      DateRange
	productID  *uuid.UUID
	shopID     *uuid.UUID
	merchantID uuid.UUID
	userID     uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func NewPromotion(
	promoType Type,
	dates DateRange,
	productID, shopID *uuid.UUID,
	merchantID, userID uuid.UUID,
) (*Promotion, error) {
	if !promoType.IsValid() {
		return nil, ErrInvalidType
	}
	if merchantID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	if err := validateScope(promoType, productID, shopID); err != nil {
		return nil, err
	}

	return &Promotion{
		id:         uuid.New(),
		promoType:  promoType,
		status:     StatusDraft,
		dates:      dates,
		productID:  productID,
		shopID:     shopID,
		merchantID: merchantID,
		userID:     userID,
	}, nil
}

func ReconstructPromotion(
	id uuid.UUID,
	promoType Type,
	status Status,
	dates DateRange,
	productID, shopID *uuid.UUID,
	merchantID, userID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Promotion {
	return &Promotion{
		id:         id,
		promoType:  promoType,
		status:     status,
		dates:      dates,
		productID:  productID,
		shopID:     shopID,
		merchantID: merchantID,
		userID:     userID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func validateScope(t Type, productID, shopID *uuid.UUID) error {
	switch t {
	case TypeProduct:
		if productID == nil {
			return ErrScopeRequired
		}
		if shopID != nil {
			return ErrScopeNotAllowed
		}
	case TypeShop:
		if shopID == nil {
			return ErrScopeRequired
		}
		if productID != nil {
			return ErrScopeNotAllowed
		}
	case TypeBanner:
		if productID != nil || shopID != nil {
			return ErrScopeNotAllowed
		}
	}
	return nil
}

func (p *Promotion) ConsumesCapacity() bool {
	return p.status.ConsumesCapacity()
}

func (p *Promotion) IsOwnedBy(merchantID uuid.UUID) bool {
	return p.merchantID == merchantID
}

func (p *Promotion) ID() uuid.UUID         { return p.id }
func (p *Promotion) Type() Type            { return p.promoType }
func (p *Promotion) Status() Status        { return p.status }
func (p *Promotion) Dates() DateRange      { return p.dates }
func (p *Promotion) ProductID() *uuid.UUID { return p.productID }
func (p *Promotion) ShopID() *uuid.UUID    { return p.shopID }
func (p *Promotion) MerchantID() uuid.UUID { return p.merchantID }
func (p *Promotion) UserID() uuid.UUID     { return p.userID }
func (p *Promotion) CreatedAt() time.Time  { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time  { return p.updatedAt }
