package api

import (
	"errors"
	"net/http"

	reqdto "promo-slot-engine/internal/handler/dto/request"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Payment gateway callback
// @Description Gateway notification of a payment outcome; success confirms the promotion
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentCallbackRequest true "Callback payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/callback [post]
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if !req.Succeeded() {
		// acknowledge non-success events so the gateway stops retrying
		c.JSON(http.StatusOK, gin.H{
			"status": "ignored",
		})
		return
	}

	result, err := h.paymentCommands.ConfirmPayment(c.Request.Context(), req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, errs.ErrPromotionNotFound), errors.Is(err, errs.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Billing records not found",
			})
		case errors.Is(err, errs.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reserved slots are no longer available",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	status := "confirmed"
	if result.AlreadyPaid {
		status = "already_paid"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"promotion_id": result.PromotionID.String(),
	})
}
