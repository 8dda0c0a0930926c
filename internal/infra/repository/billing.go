package repository

import (
	"context"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/infra/db"
	"promo-slot-engine/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BillingRepository struct {
	db db.DBTX
}

func NewBillingRepository(dbtx db.DBTX) *BillingRepository {
	return &BillingRepository{db: dbtx}
}

var _ shared.BillingRepository = (*BillingRepository)(nil)

func (r *BillingRepository) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	query, args, err := qb.
		Insert("promotion_invoices").
		Columns("id", "promotion_id", "amount_cents", "status").
		Values(inv.ID(), inv.PromotionID(), inv.AmountCents(), inv.Status().String()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build invoice insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert invoice", err, infra.KindOfPgErr(err))
	}
	return nil
}

func (r *BillingRepository) CreateTransaction(ctx context.Context, txn *billing.Transaction) error {
	query, args, err := qb.
		Insert("payment_transactions").
		Columns("id", "invoice_id", "promotion_id", "amount_cents", "status").
		Values(txn.ID(), txn.InvoiceID(), txn.PromotionID(), txn.AmountCents(), txn.Status().String()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build transaction insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert transaction", err, infra.KindOfPgErr(err))
	}
	return nil
}

func (r *BillingRepository) MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) error {
	return r.markStatus(ctx, "promotion_invoices", invoiceID, billing.InvoicePaid.String())
}

func (r *BillingRepository) MarkTransactionSucceeded(ctx context.Context, transactionID uuid.UUID) error {
	return r.markStatus(ctx, "payment_transactions", transactionID, billing.TransactionSucceeded.String())
}

func (r *BillingRepository) markStatus(ctx context.Context, table string, id uuid.UUID, status string) error {
	query, args, err := qb.
		Update(table).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("update status", err, infra.KindOfPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("row not found", nil, infra.KindNotFound)
	}
	return nil
}
