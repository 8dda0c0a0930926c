package errs

import "errors"

// Sentinel errors shared by the usecase layers (spec'd error kinds of the
// booking engine).
var (
	// Scope resolution
	ErrScopeNotFound = errors.New("scope reference not found")

	// Capacity / availability
	ErrSlotConfigMissing = errors.New("slot configuration missing for promotion type")
	ErrSlotUnavailable   = errors.New("requested date range is not fully bookable")

	// Lifecycle
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("caller is not permitted to act on this resource")

	// Billing / payment
	ErrInvoiceNotFound           = errors.New("invoice not found")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrPaymentGatewayUnavailable = errors.New("payment gateway unavailable")

	// Operation
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
