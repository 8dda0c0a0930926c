package repository

import (
	"context"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/infra/db"
	"promo-slot-engine/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PromotionRepository struct {
	db db.DBTX
}

func NewPromotionRepository(dbtx db.DBTX) *PromotionRepository {
	return &PromotionRepository{db: dbtx}
}

var _ shared.PromotionRepository = (*PromotionRepository)(nil)

func (r *PromotionRepository) Create(ctx context.Context, p *promotion.Promotion) (uuid.UUID, error) {
	query, args, err := qb.
		Insert("promotions").
		Columns("id", "promotion_type", "status", "start_date", "end_date",
			"product_id", "shop_id", "merchant_id", "user_id").
		Values(p.ID(), p.Type().String(), p.Status().String(),
			p.Dates().Start(), p.Dates().End(),
			p.ProductID(), p.ShopID(), p.MerchantID(), p.UserID()).
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("build promotion insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return uuid.Nil, infra.WrapRepoErr("insert promotion", err, infra.KindOfPgErr(err))
	}
	return p.ID(), nil
}

func (r *PromotionRepository) UpdateDates(ctx context.Context, id uuid.UUID, dates promotion.DateRange) error {
	query, args, err := qb.
		Update("promotions").
		Set("start_date", dates.Start()).
		Set("end_date", dates.End()).
		Set("updated_at", sq.Expr("NOW()")).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build promotion dates update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("update promotion dates", err, infra.KindOfPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PromotionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status promotion.Status) error {
	query, args, err := qb.
		Update("promotions").
		Set("status", status.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build promotion status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("update promotion status", err, infra.KindOfPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}
