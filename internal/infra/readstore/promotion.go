package readstore

import (
	"context"
	"time"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/infra/db"
	"promo-slot-engine/internal/usecase/queries"
	"promo-slot-engine/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func (r *CommandReads) PromotionByID(ctx context.Context, id uuid.UUID) (*shared.PromotionSnapshot, error) {
	query, args, err := qb.
		Select("id", "promotion_type", "status", "start_date", "end_date",
			"product_id", "shop_id", "merchant_id", "user_id").
		From("promotions").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build promotion query", err)
	}

	var (
		snap            shared.PromotionSnapshot
		typeStr, status string
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &typeStr, &status, &snap.StartDate, &snap.EndDate,
		&snap.ProductID, &snap.ShopID, &snap.MerchantID, &snap.UserID,
	); err != nil {
		return nil, infra.WrapRepoErr("query promotion", err, infra.KindOfPgErr(err))
	}
	snap.Type = promotion.Type(typeStr)
	snap.Status = promotion.Status(status)
	return &snap, nil
}

// OccupiedRanges fetches the date ranges of capacity-consuming promotions
// (Confirm or Published) of one type and scope that overlap the window.
// Drafts never appear here.
func (r *CommandReads) OccupiedRanges(
	ctx context.Context,
	t promotion.Type,
	scope shared.ScopeFilter,
	window promotion.DateRange,
) ([]promotion.DateRange, error) {
	b := qb.
		Select("p.start_date", "p.end_date").
		From("promotions p").
		Where("p.promotion_type = ?", t.String()).
		Where(sq.Eq{"p.status": []string{
			promotion.StatusConfirm.String(),
			promotion.StatusPublished.String(),
		}}).
		Where("p.start_date <= ?", window.End()).
		Where("p.end_date >= ?", window.Start())

	switch {
	case scope.CategoryID != nil:
		b = b.Join("products pr ON pr.id = p.product_id").
			Where("pr.category_id = ?", *scope.CategoryID)
	case scope.ShopTypeID != nil:
		b = b.Join("shops s ON s.id = p.shop_id").
			Where("s.shop_type_id = ?", *scope.ShopTypeID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build occupied ranges query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("query occupied ranges", err, infra.KindOfPgErr(err))
	}
	defer rows.Close()

	var ranges []promotion.DateRange
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("scan occupied range", err)
		}
		dr, err := promotion.NewDateRange(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("reconstruct occupied range", err)
		}
		ranges = append(ranges, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate occupied ranges", err)
	}
	return ranges, nil
}

// PromotionReadStore serves the query side's view reads off the pool.
type PromotionReadStore struct {
	db db.DBTX
}

func NewPromotionReadStore(dbtx db.DBTX) *PromotionReadStore {
	return &PromotionReadStore{db: dbtx}
}

var _ queries.PromotionReadStore = (*PromotionReadStore)(nil)

func (r *PromotionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error) {
	query, args, err := qb.
		Select("p.id", "p.promotion_type", "p.status", "p.start_date", "p.end_date",
			"p.product_id", "p.shop_id", "p.merchant_id", "p.user_id",
			"p.created_at", "p.updated_at",
			"i.id", "i.status", "i.amount_cents").
		From("promotions p").
		LeftJoin("promotion_invoices i ON i.promotion_id = p.id").
		Where("p.id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build promotion view query", err)
	}

	var (
		view       queries.PromotionView
		start, end time.Time
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.Type, &view.Status, &start, &end,
		&view.ProductID, &view.ShopID, &view.MerchantID, &view.UserID,
		&view.CreatedAt, &view.UpdatedAt,
		&view.InvoiceID, &view.InvoiceStatus, &view.AmountCents,
	); err != nil {
		return nil, infra.WrapRepoErr("query promotion view", err, infra.KindOfPgErr(err))
	}
	view.StartDate = start.Format(promotion.DayKeyFormat)
	view.EndDate = end.Format(promotion.DayKeyFormat)
	return &view, nil
}

func (r *PromotionReadStore) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]queries.PromotionListItem, error) {
	query, args, err := qb.
		Select("id", "promotion_type", "status", "start_date", "end_date", "created_at").
		From("promotions").
		Where("merchant_id = ?", merchantID).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build promotion list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("query promotion list", err, infra.KindOfPgErr(err))
	}
	defer rows.Close()

	items := make([]queries.PromotionListItem, 0)
	for rows.Next() {
		var (
			item       queries.PromotionListItem
			start, end time.Time
		)
		if err := rows.Scan(&item.ID, &item.Type, &item.Status, &start, &end, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("scan promotion list item", err)
		}
		item.StartDate = start.Format(promotion.DayKeyFormat)
		item.EndDate = end.Format(promotion.DayKeyFormat)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate promotion list", err)
	}
	return items, nil
}
