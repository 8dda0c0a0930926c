package readstore

import (
	"context"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/usecase/shared"
)

func (r *CommandReads) SlotConfigByType(ctx context.Context, t promotion.Type) (*shared.SlotConfigSnapshot, error) {
	query, args, err := qb.
		Select("promotion_type", "daily_capacity", "daily_charge_cents").
		From("slot_configs").
		Where("promotion_type = ?", t.String()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build slot config query", err)
	}

	var (
		typeStr  string
		capacity int
		charge   int64
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&typeStr, &capacity, &charge); err != nil {
		return nil, infra.WrapRepoErr("query slot config", err, infra.KindOfPgErr(err))
	}

	return &shared.SlotConfigSnapshot{
		Type:             promotion.Type(typeStr),
		DailyCapacity:    capacity,
		DailyChargeCents: charge,
	}, nil
}
