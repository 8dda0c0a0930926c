package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount     = errors.New("invoice amount cannot be negative")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")
)

type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice bills a promotion's reservation. At most one invoice exists per
// promotion; confirmation replays reuse it instead of creating another.
type Invoice struct {
	id          uuid.UUID
	promotionID uuid.UUID
	amountCents int64
	status      InvoiceStatus
	createdAt   time.Time
}

func NewInvoice(promotionID uuid.UUID, amountCents int64) (*Invoice, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Invoice{
		id:          uuid.New(),
		promotionID: promotionID,
		amountCents: amountCents,
		status:      InvoiceUnpaid,
	}, nil
}

func ReconstructInvoice(id, promotionID uuid.UUID, amountCents int64, status InvoiceStatus, createdAt time.Time) *Invoice {
	return &Invoice{
		id:          id,
		promotionID: promotionID,
		amountCents: amountCents,
		status:      status,
		createdAt:   createdAt,
	}
}

func (i *Invoice) MarkPaid() error {
	if i.status == InvoicePaid {
		return ErrInvoiceAlreadyPaid
	}
	i.status = InvoicePaid
	return nil
}

func (i *Invoice) IsPaid() bool {
	return i.status == InvoicePaid
}

func (i *Invoice) ID() uuid.UUID          { return i.id }
func (i *Invoice) PromotionID() uuid.UUID { return i.promotionID }
func (i *Invoice) AmountCents() int64     { return i.amountCents }
func (i *Invoice) Status() InvoiceStatus  { return i.status }
func (i *Invoice) CreatedAt() time.Time   { return i.createdAt }

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionSucceeded TransactionStatus = "succeeded"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is the payment-gateway record tied to an invoice. Replayed
// confirmation attempts target the same transaction id.
type Transaction struct {
	id          uuid.UUID
	invoiceID   uuid.UUID
	promotionID uuid.UUID
	amountCents int64
	status      TransactionStatus
	createdAt   time.Time
}

func NewTransaction(invoiceID, promotionID uuid.UUID, amountCents int64) (*Transaction, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Transaction{
		id:          uuid.New(),
		invoiceID:   invoiceID,
		promotionID: promotionID,
		amountCents: amountCents,
		status:      TransactionPending,
	}, nil
}

func ReconstructTransaction(id, invoiceID, promotionID uuid.UUID, amountCents int64, status TransactionStatus, createdAt time.Time) *Transaction {
	return &Transaction{
		id:          id,
		invoiceID:   invoiceID,
		promotionID: promotionID,
		amountCents: amountCents,
		status:      status,
		createdAt:   createdAt,
	}
}

func (t *Transaction) MarkSucceeded() {
	t.status = TransactionSucceeded
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) InvoiceID() uuid.UUID     { return t.invoiceID }
func (t *Transaction) PromotionID() uuid.UUID   { return t.promotionID }
func (t *Transaction) AmountCents() int64       { return t.amountCents }
func (t *Transaction) Status() TransactionStatus { return t.status }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
