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

type PromotionCommands interface {
	Create(ctx context.Context, caller shared.Caller, p CreatePromotionParams) (*PromotionResult, error)
	Update(ctx context.Context, caller shared.Caller, id uuid.UUID, p UpdatePromotionParams) (*PromotionResult, error)
	RequestPaymentURL(ctx context.Context, caller shared.Caller, promotionID uuid.UUID) (string, error)
}

type promotionCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clk     clock.Clock
}

func NewPromotionCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock) PromotionCommands {
	return &promotionCommandsImpl{uow: uow, gateway: gateway, clk: clk}
}

// Create validates the requested range against current occupancy and persists
// the promotion as a draft. A confirmation intent additionally creates the
// invoice and pending transaction inside the same transaction, then asks the
// gateway for a payment URL after commit. The status itself only advances via
// the payment callback.
func (c *promotionCommandsImpl) Create(ctx context.Context, caller shared.Caller, p CreatePromotionParams) (*PromotionResult, error) {
	dates, err := promotion.NewDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}

	kind := promotion.ClassifyTransition("", p.RequestedStatus)
	if kind == promotion.TransitionInvalid {
		return nil, errs.ErrInvalidTransition
	}

	resolved, err := shared.ResolveScope(ctx, c.uow.Reads(), p.Type, p.ProductID, p.ShopID)
	if err != nil {
		return nil, err
	}
	if resolved.OwnerMerchant != nil && !caller.CanActFor(*resolved.OwnerMerchant) {
		return nil, errs.ErrPermissionDenied
	}

	entity, err := promotion.NewPromotion(p.Type, dates, p.ProductID, p.ShopID, caller.MerchantID, caller.UserID)
	if err != nil {
		return nil, err
	}

	result := &PromotionResult{Status: promotion.StatusDraft}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := c.reserveSlots(ctx, tx, p.Type, resolved.Filter, dates)
		if err != nil {
			return err
		}

		id, err := tx.Promotions().Create(ctx, entity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.PromotionID = id

		if kind == promotion.TransitionConfirmIntent {
			return c.ensureBilling(ctx, tx, id, cfg, dates, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kind == promotion.TransitionConfirmIntent {
		return c.fetchPaymentURL(ctx, caller, result)
	}
	return result, nil
}

// Update applies a lifecycle transition to an existing promotion. Date
// changes are only honored while the promotion is (and stays) a draft;
// publishing never re-checks availability because capacity was reserved at
// confirmation time.
func (c *promotionCommandsImpl) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, p UpdatePromotionParams) (*PromotionResult, error) {
	snap, err := c.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	kind := promotion.ClassifyTransition(snap.Status, p.RequestedStatus)
	if kind == promotion.TransitionInvalid {
		return nil, errs.ErrInvalidTransition
	}
	if kind == promotion.TransitionPublish && (p.StartDate != nil || p.EndDate != nil) {
		return nil, errs.ErrInvalidTransition
	}

	dates, datesChanged, err := mergeDates(snap, p)
	if err != nil {
		return nil, err
	}

	resolved, err := shared.ResolveScope(ctx, c.uow.Reads(), snap.Type, snap.ProductID, snap.ShopID)
	if err != nil {
		return nil, err
	}

	result := &PromotionResult{PromotionID: id, Status: p.RequestedStatus}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		switch kind {
		case promotion.TransitionDraft, promotion.TransitionConfirmIntent:
			cfg, err := c.reserveSlots(ctx, tx, snap.Type, resolved.Filter, dates)
			if err != nil {
				return err
			}
			if datesChanged {
				if err := tx.Promotions().UpdateDates(ctx, id, dates); err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
			}
			result.Status = promotion.StatusDraft
			if kind == promotion.TransitionConfirmIntent {
				return c.ensureBilling(ctx, tx, id, cfg, dates, result)
			}
			return nil

		case promotion.TransitionPublish:
			if err := tx.Promotions().UpdateStatus(ctx, id, promotion.StatusPublished); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			result.Status = promotion.StatusPublished
			return c.enqueueNotification(ctx, tx, "promotion_published", snap)

		default:
			return errs.ErrInvalidTransition
		}
	})
	if err != nil {
		return nil, err
	}

	if kind == promotion.TransitionConfirmIntent {
		return c.fetchPaymentURL(ctx, caller, result)
	}
	return result, nil
}

// RequestPaymentURL re-requests a payment URL for an existing unpaid invoice,
// the recovery path after a gateway outage during confirmation.
func (c *promotionCommandsImpl) RequestPaymentURL(ctx context.Context, caller shared.Caller, promotionID uuid.UUID) (string, error) {
	if _, err := c.loadOwned(ctx, caller, promotionID); err != nil {
		return "", err
	}

	inv, err := c.uow.Reads().InvoiceByPromotionID(ctx, promotionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrInvoiceNotFound
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inv.Status == billing.InvoicePaid {
		return "", billing.ErrInvoiceAlreadyPaid
	}

	txn, err := c.uow.Reads().TransactionByInvoiceID(ctx, inv.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrTransactionNotFound
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	url, err := c.gateway.RequestPaymentURL(ctx, PaymentRequest{
		TransactionID: txn.ID,
		PromotionID:   promotionID,
		UserID:        caller.UserID,
		AmountCents:   txn.AmountCents,
	})
	if err != nil {
		return "", errs.Mark(err, errs.ErrPaymentGatewayUnavailable)
	}
	return url, nil
}

// reserveSlots takes the advisory lock for the (type, scope) slot, re-reads
// occupancy under it and enforces the all-or-nothing policy over the
// requested range.
func (c *promotionCommandsImpl) reserveSlots(
	ctx context.Context,
	tx shared.Tx,
	t promotion.Type,
	scope shared.ScopeFilter,
	dates promotion.DateRange,
) (*shared.SlotConfigSnapshot, error) {
	if err := tx.LockSlot(ctx, shared.SlotLockKey(t, scope)); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	cfg, err := tx.Reads().SlotConfigByType(ctx, t)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.ErrSlotConfigMissing, errs.ErrSlotUnavailable)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	occupied, err := tx.Reads().OccupiedRanges(ctx, t, scope, dates)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	avail := promotion.ComputeAvailability(cfg.DailyCapacity, dates, occupied)
	if ok, _ := promotion.ValidateRange(dates, avail); !ok {
		return nil, errs.ErrSlotUnavailable
	}
	return cfg, nil
}

// ensureBilling creates the invoice and pending transaction for a
// confirmation intent, or reuses the existing pair on a replay. At most one
// invoice ever exists per promotion.
func (c *promotionCommandsImpl) ensureBilling(
	ctx context.Context,
	tx shared.Tx,
	promotionID uuid.UUID,
	cfg *shared.SlotConfigSnapshot,
	dates promotion.DateRange,
	result *PromotionResult,
) error {
	existing, err := tx.Reads().InvoiceByPromotionID(ctx, promotionID)
	switch {
	case err == nil:
		txn, err := tx.Reads().TransactionByInvoiceID(ctx, existing.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.InvoiceID = &existing.ID
		result.TransactionID = &txn.ID
		result.AmountCents = &existing.AmountCents
		return nil

	case infra.IsKind(err, infra.KindNotFound):
		pricing, err := cfg.Config()
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		amount := pricing.CostFor(dates.DayCount())
		inv, err := billing.NewInvoice(promotionID, amount)
		if err != nil {
			return err
		}
		if err := tx.Billing().CreateInvoice(ctx, inv); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		txn, err := billing.NewTransaction(inv.ID(), promotionID, amount)
		if err != nil {
			return err
		}
		if err := tx.Billing().CreateTransaction(ctx, txn); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		invID, txnID := inv.ID(), txn.ID()
		result.InvoiceID = &invID
		result.TransactionID = &txnID
		result.AmountCents = &amount
		return nil

	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

// fetchPaymentURL runs after the reservation committed. A gateway failure is
// reported alongside the result so the persisted promotion still reaches the
// caller.
func (c *promotionCommandsImpl) fetchPaymentURL(ctx context.Context, caller shared.Caller, result *PromotionResult) (*PromotionResult, error) {
	if result.TransactionID == nil || result.AmountCents == nil {
		return result, nil
	}
	url, err := c.gateway.RequestPaymentURL(ctx, PaymentRequest{
		TransactionID: *result.TransactionID,
		PromotionID:   result.PromotionID,
		UserID:        caller.UserID,
		AmountCents:   *result.AmountCents,
	})
	if err != nil {
		return result, errs.Mark(err, errs.ErrPaymentGatewayUnavailable)
	}
	result.PaymentURL = url
	return result, nil
}

func (c *promotionCommandsImpl) loadOwned(ctx context.Context, caller shared.Caller, id uuid.UUID) (*shared.PromotionSnapshot, error) {
	snap, err := c.uow.Reads().PromotionByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPromotionNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !caller.CanActFor(snap.MerchantID) {
		return nil, errs.ErrPermissionDenied
	}
	return snap, nil
}

func mergeDates(snap *shared.PromotionSnapshot, p UpdatePromotionParams) (promotion.DateRange, bool, error) {
	start := snap.StartDate
	end := snap.EndDate
	changed := false
	if p.StartDate != nil {
		start = *p.StartDate
		changed = true
	}
	if p.EndDate != nil {
		end = *p.EndDate
		changed = true
	}
	dates, err := promotion.NewDateRange(start, end)
	return dates, changed, err
}

func (c *promotionCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, snap *shared.PromotionSnapshot) error {
	payload, err := json.Marshal(map[string]string{
		"promotion_id": snap.ID.String(),
		"merchant_id":  snap.MerchantID.String(),
		"type":         snap.Type.String(),
		"start_date":   snap.StartDate.Format(promotion.DayKeyFormat),
		"end_date":     snap.EndDate.Format(promotion.DayKeyFormat),
	})
	if err != nil {
		return errs.Wrap(err, "marshal notification payload")
	}
	if err := tx.Notifications().CreateJob(ctx, "webhook", topic, payload, c.clk.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
