package shared

import (
	"context"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type ScopeReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ShopByID(ctx context.Context, id uuid.UUID) (*ShopSnapshot, error)
}

// ResolvedScope carries the capacity-competition filter plus the owning
// merchant of the referenced product or shop (nil for Banner, which has no
// scope reference).
type ResolvedScope struct {
	Filter        ScopeFilter
	OwnerMerchant *uuid.UUID
}

// ResolveScope maps a scope reference to its competition dimension: the
// product's category for Product promotions, the shop's shop type for Shop
// promotions. An unresolvable reference is a hard error, never an empty
// result.
func ResolveScope(ctx context.Context, reads ScopeReads, t promotion.Type, productID, shopID *uuid.UUID) (ResolvedScope, error) {
	switch t {
	case promotion.TypeProduct:
		if productID == nil {
			return ResolvedScope{}, errs.Mark(promotion.ErrScopeRequired, errs.ErrScopeNotFound)
		}
		prod, err := reads.ProductByID(ctx, *productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ResolvedScope{}, errs.ErrScopeNotFound
			}
			return ResolvedScope{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return ResolvedScope{
			Filter:        ScopeFilter{CategoryID: &prod.CategoryID},
			OwnerMerchant: &prod.MerchantID,
		}, nil

	case promotion.TypeShop:
		if shopID == nil {
			return ResolvedScope{}, errs.Mark(promotion.ErrScopeRequired, errs.ErrScopeNotFound)
		}
		shop, err := reads.ShopByID(ctx, *shopID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ResolvedScope{}, errs.ErrScopeNotFound
			}
			return ResolvedScope{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return ResolvedScope{
			Filter:        ScopeFilter{ShopTypeID: &shop.ShopTypeID},
			OwnerMerchant: &shop.MerchantID,
		}, nil

	default:
		// Banner competes globally.
		return ResolvedScope{}, nil
	}
}
