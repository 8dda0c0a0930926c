package readstore

import (
	"context"

	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func (r *CommandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	query, args, err := qb.
		Select("id", "merchant_id", "category_id", "name").
		From("products").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build product query", err)
	}

	var p shared.ProductSnapshot
	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.MerchantID, &p.CategoryID, &p.Name); err != nil {
		return nil, infra.WrapRepoErr("query product", err, infra.KindOfPgErr(err))
	}
	return &p, nil
}

func (r *CommandReads) ShopByID(ctx context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	query, args, err := qb.
		Select("id", "merchant_id", "shop_type_id", "name").
		From("shops").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build shop query", err)
	}

	var s shared.ShopSnapshot
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.MerchantID, &s.ShopTypeID, &s.Name); err != nil {
		return nil, infra.WrapRepoErr("query shop", err, infra.KindOfPgErr(err))
	}
	return &s, nil
}
