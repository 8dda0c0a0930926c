package queries

import (
	"context"

	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type PromotionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PromotionView, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]PromotionListItem, error)
}

type PromotionQueries interface {
	GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*PromotionView, error)
	ListOwn(ctx context.Context, caller shared.Caller) ([]PromotionListItem, error)
}

type promotionQueriesImpl struct {
	reads PromotionReadStore
}

func NewPromotionQueries(reads PromotionReadStore) PromotionQueries {
	return &promotionQueriesImpl{reads: reads}
}

// GetByID returns the promotion with its billing state. Merchants only see
// their own promotions; admins see everything.
func (q *promotionQueriesImpl) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*PromotionView, error) {
	view, err := q.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPromotionNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !caller.IsAdmin() && view.MerchantID != caller.MerchantID {
		// hide existence from other merchants
		return nil, errs.ErrPromotionNotFound
	}
	return view, nil
}

func (q *promotionQueriesImpl) ListOwn(ctx context.Context, caller shared.Caller) ([]PromotionListItem, error) {
	items, err := q.reads.ListByMerchant(ctx, caller.MerchantID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}
