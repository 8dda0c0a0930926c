package request

import "github.com/google/uuid"

// PaymentCallbackRequest is the gateway's success notification. Only
// succeeded events advance a promotion; anything else is acknowledged and
// dropped.
type PaymentCallbackRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" binding:"required"`
	Status        string    `json:"status" binding:"required"`
}

func (r *PaymentCallbackRequest) Succeeded() bool {
	return r.Status == "succeeded"
}
