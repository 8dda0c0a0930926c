package commands

import (
	"context"
	"encoding/json"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/pkg/clock"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	ConfirmPayment(ctx context.Context, transactionID uuid.UUID) (*ConfirmPaymentResult, error)
}

type paymentCommandsImpl struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, clk: clk}
}

// ConfirmPayment handles the gateway success callback. The slot range is
// re-validated under the advisory lock before the promotion advances to
// Confirm, because a draft holds no capacity between confirmation intent and
// payment. Replayed callbacks for an already paid invoice are a no-op.
func (c *paymentCommandsImpl) ConfirmPayment(ctx context.Context, transactionID uuid.UUID) (*ConfirmPaymentResult, error) {
	result := &ConfirmPaymentResult{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		txn, err := tx.Reads().TransactionByID(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrTransactionNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		snap, err := tx.Reads().PromotionByID(ctx, txn.PromotionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrPromotionNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.PromotionID = snap.ID
		result.Status = snap.Status

		inv, err := tx.Reads().InvoiceByPromotionID(ctx, snap.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrInvoiceNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if inv.Status == billing.InvoicePaid {
			result.AlreadyPaid = true
			return nil
		}

		dates, err := promotion.NewDateRange(snap.StartDate, snap.EndDate)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		resolved, err := shared.ResolveScope(ctx, tx.Reads(), snap.Type, snap.ProductID, snap.ShopID)
		if err != nil {
			return err
		}

		if err := tx.LockSlot(ctx, shared.SlotLockKey(snap.Type, resolved.Filter)); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		cfg, err := tx.Reads().SlotConfigByType(ctx, snap.Type)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(errs.ErrSlotConfigMissing, errs.ErrSlotUnavailable)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		occupied, err := tx.Reads().OccupiedRanges(ctx, snap.Type, resolved.Filter, dates)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		avail := promotion.ComputeAvailability(cfg.DailyCapacity, dates, occupied)
		if ok, _ := promotion.ValidateRange(dates, avail); !ok {
			return errs.ErrSlotUnavailable
		}

		if err := tx.Billing().MarkInvoicePaid(ctx, inv.ID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Billing().MarkTransactionSucceeded(ctx, txn.ID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Promotions().UpdateStatus(ctx, snap.ID, promotion.StatusConfirm); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.Status = promotion.StatusConfirm

		payload, err := json.Marshal(map[string]string{
			"promotion_id": snap.ID.String(),
			"invoice_id":   inv.ID.String(),
		})
		if err != nil {
			return errs.Wrap(err, "marshal notification payload")
		}
		if err := tx.Notifications().CreateJob(ctx, "webhook", "payment_confirmed", payload, c.clk.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
