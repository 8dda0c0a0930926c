package api

import (
	"errors"
	"net/http"

	"promo-slot-engine/internal/domain/promotion"
	reqdto "promo-slot-engine/internal/handler/dto/request"
	resdto "promo-slot-engine/internal/handler/dto/response"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Check slot availability
// @Description Per-day availability of promotional slots for a type and scope over a window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param type query string true "Promotion type (banner, product, shop)"
// @Param product_id query string false "Product ID (required for product type)"
// @Param shop_id query string false "Shop ID (required for shop type)"
// @Param start_date query string false "Window start (YYYY-MM-DD, defaults to tomorrow)"
// @Param end_date query string false "Window end (YYYY-MM-DD, defaults to start plus two months)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
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

	start, end, err := req.ParseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.availabilityQueries.CheckAvailability(c.Request.Context(), queries.AvailabilityQuery{
		Type:      promoType,
		ProductID: req.ProductID,
		ShopID:    req.ShopID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		case errors.Is(err, promotion.ErrScopeRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Scope reference required for this promotion type",
			})
		case errors.Is(err, errs.ErrScopeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Referenced product or shop not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Estimate reservation cost
// @Description Price a candidate date range without reserving anything
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param type query string true "Promotion type (banner, product, shop)"
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} resdto.CostResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/cost [get]
func (h *AvailabilityHandler) EstimateCost(c *gin.Context) {
	var req reqdto.CostRequest
	if err := c.ShouldBindQuery(&req); err != nil {
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

	start, end, err := req.ParseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.availabilityQueries.EstimateCost(c.Request.Context(), queries.CostQuery{
		Type:  promoType,
		Start: start,
		End:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, promotion.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		case errors.Is(err, errs.ErrSlotConfigMissing):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No slot configuration for this promotion type",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCostView(view))
}
