package shared

import (
	"context"
	"time"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for capacity checks and writes, retried on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: non-transactional command reads for validation and lookups that
	// do not reserve capacity.
	Reads() CommandReads
}

// Tx exposes repositories bound to one open transaction. LockSlot must be
// taken before reading occupancy for a capacity-consuming write; the lock is
// released with the transaction.
type Tx interface {
	Promotions() PromotionRepository
	Billing() BillingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	LockSlot(ctx context.Context, key string) error
}

type CommandReads interface {
	SlotConfigByType(ctx context.Context, t promotion.Type) (*SlotConfigSnapshot, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ShopByID(ctx context.Context, id uuid.UUID) (*ShopSnapshot, error)
	PromotionByID(ctx context.Context, id uuid.UUID) (*PromotionSnapshot, error)
	InvoiceByPromotionID(ctx context.Context, promotionID uuid.UUID) (*InvoiceSnapshot, error)
	TransactionByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*TransactionSnapshot, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (*TransactionSnapshot, error)
	// OccupiedRanges returns the date ranges of capacity-consuming promotions
	// of the given type and scope overlapping the window.
	OccupiedRanges(ctx context.Context, t promotion.Type, scope ScopeFilter, window promotion.DateRange) ([]promotion.DateRange, error)
}

type PromotionRepository interface {
	Create(ctx context.Context, p *promotion.Promotion) (uuid.UUID, error)
	UpdateDates(ctx context.Context, id uuid.UUID, dates promotion.DateRange) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status promotion.Status) error
}

type BillingRepository interface {
	CreateInvoice(ctx context.Context, inv *billing.Invoice) error
	CreateTransaction(ctx context.Context, txn *billing.Transaction) error
	MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) error
	MarkTransactionSucceeded(ctx context.Context, transactionID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
