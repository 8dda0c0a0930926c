package readstore

import (
	"context"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func (r *CommandReads) InvoiceByPromotionID(ctx context.Context, promotionID uuid.UUID) (*shared.InvoiceSnapshot, error) {
	query, args, err := qb.
		Select("id", "promotion_id", "amount_cents", "status").
		From("promotion_invoices").
		Where("promotion_id = ?", promotionID).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build invoice query", err)
	}

	var (
		snap   shared.InvoiceSnapshot
		status string
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.PromotionID, &snap.AmountCents, &status); err != nil {
		return nil, infra.WrapRepoErr("query invoice", err, infra.KindOfPgErr(err))
	}
	snap.Status = billing.InvoiceStatus(status)
	return &snap, nil
}

func (r *CommandReads) TransactionByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*shared.TransactionSnapshot, error) {
	return r.transactionBy(ctx, "invoice_id", invoiceID)
}

func (r *CommandReads) TransactionByID(ctx context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	return r.transactionBy(ctx, "id", id)
}

func (r *CommandReads) transactionBy(ctx context.Context, column string, value uuid.UUID) (*shared.TransactionSnapshot, error) {
	query, args, err := qb.
		Select("id", "invoice_id", "promotion_id", "amount_cents", "status").
		From("payment_transactions").
		Where(column+" = ?", value).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build transaction query", err)
	}

	var (
		snap   shared.TransactionSnapshot
		status string
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.InvoiceID, &snap.PromotionID, &snap.AmountCents, &status); err != nil {
		return nil, infra.WrapRepoErr("query transaction", err, infra.KindOfPgErr(err))
	}
	snap.Status = billing.TransactionStatus(status)
	return &snap, nil
}
