package api

import (
	"errors"
	"net/http"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"
	reqdto "promo-slot-engine/internal/handler/dto/request"
	resdto "promo-slot-engine/internal/handler/dto/response"
	"promo-slot-engine/internal/handler/middleware"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/commands"
	"promo-slot-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const paymentURLUnavailableMsg = "payment URL could not be obtained, retry via the payment-url endpoint"

type PromotionHandler struct {
	promotionCommands commands.PromotionCommands
	promotionQueries  queries.PromotionQueries
}

func NewPromotionHandler(promotionCommands commands.PromotionCommands, promotionQueries queries.PromotionQueries) *PromotionHandler {
	return &PromotionHandler{
		promotionCommands: promotionCommands,
		promotionQueries:  promotionQueries,
	}
}

// @Summary Create promotion
// @Description Reserve promotional slots for a date range, as draft or with confirmation intent
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePromotionRequest true "Promotion request"
// @Success 201 {object} resdto.PromotionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePromotionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	promoType, err := promotion.NewType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion type",
		})
		return
	}
	status, err := promotion.NewStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion status",
		})
		return
	}
	start, end, err := req.ParseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.promotionCommands.Create(c.Request.Context(), caller, commands.CreatePromotionParams{
		Type:            promoType,
		ProductID:       req.ProductID,
		ShopID:          req.ShopID,
		StartDate:       start,
		EndDate:         end,
		RequestedStatus: status,
	})
	if err != nil && !errors.Is(err, errs.ErrPaymentGatewayUnavailable) {
		h.respondCommandError(c, err)
		return
	}

	response := resdto.FromPromotionResult(result)
	if errors.Is(err, errs.ErrPaymentGatewayUnavailable) {
		// reservation is committed; the payment URL can be re-requested
		response.PaymentURLError = paymentURLUnavailableMsg
	}
	c.JSON(http.StatusCreated, response)
}

// @Summary Update promotion
// @Description Apply a lifecycle transition (draft, confirm, published) and optionally re-date a draft
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Param request body reqdto.UpdatePromotionRequest true "Update request"
// @Success 200 {object} resdto.PromotionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /promotions/{id} [patch]
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion ID format",
		})
		return
	}

	var req reqdto.UpdatePromotionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	status, err := promotion.NewStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion status",
		})
		return
	}
	start, end, err := req.ParseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.promotionCommands.Update(c.Request.Context(), caller, id, commands.UpdatePromotionParams{
		StartDate:       start,
		EndDate:         end,
		RequestedStatus: status,
	})
	if err != nil && !errors.Is(err, errs.ErrPaymentGatewayUnavailable) {
		h.respondCommandError(c, err)
		return
	}

	response := resdto.FromPromotionResult(result)
	if errors.Is(err, errs.ErrPaymentGatewayUnavailable) {
		response.PaymentURLError = paymentURLUnavailableMsg
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Request payment URL
// @Description Re-request a payment URL for an unpaid invoice after a gateway outage
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.PaymentURLResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /promotions/{id}/payment-url [post]
func (h *PromotionHandler) RequestPaymentURL(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion ID format",
		})
		return
	}

	url, err := h.promotionCommands.RequestPaymentURL(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPromotionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Promotion not found",
			})
		case errors.Is(err, errs.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No invoice for this promotion",
			})
		case errors.Is(err, errs.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No transaction for this promotion",
			})
		case errors.Is(err, billing.ErrInvoiceAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invoice is already paid",
			})
		case errors.Is(err, errs.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not permitted to act on this promotion",
			})
		case errors.Is(err, errs.ErrPaymentGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentURLResponse{PaymentURL: url})
}

// @Summary Get promotion
// @Description Get promotion by ID with billing state
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Promotion ID"
// @Success 200 {object} resdto.PromotionDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid promotion ID format",
		})
		return
	}

	view, err := h.promotionQueries.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPromotionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Promotion not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPromotionView(view))
}

// @Summary List own promotions
// @Description List the caller merchant's promotions, newest first
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PromotionListResponse
// @Failure 401 {object} map[string]string
// @Router /promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.promotionQueries.ListOwn(c.Request.Context(), caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPromotionList(items))
}

func (h *PromotionHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, promotion.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errors.Is(err, promotion.ErrScopeRequired), errors.Is(err, promotion.ErrScopeNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid scope reference for this promotion type",
		})
	case errors.Is(err, errs.ErrScopeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Referenced product or shop not found",
		})
	case errors.Is(err, errs.ErrPromotionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Promotion not found",
		})
	case errors.Is(err, errs.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested date range is not fully available",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, errs.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not permitted to act on this resource",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
