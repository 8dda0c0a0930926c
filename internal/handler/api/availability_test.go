//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/handler/api"
	resdto "promo-slot-engine/internal/handler/dto/response"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/queries"
	"promo-slot-engine/tests/common/httptest"
	queriesmock "promo-slot-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/availability", s.handler.CheckAvailability)
	s.router.GET("/availability/cost", s.handler.EstimateCost)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestCheckAvailability() {
	view := &queries.AvailabilityView{
		Type:           "banner",
		WindowStart:    "2026-10-01",
		WindowEnd:      "2026-10-05",
		BookedDays:     []string{"2026-10-02"},
		AvailableDays:  []string{"2026-10-01", "2026-10-03", "2026-10-04", "2026-10-05"},
		FullyAvailable: false,
	}

	s.Run("success: returns 200 OK with per-day availability", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		url := "/availability?type=banner&start_date=2026-10-01&end_date=2026-10-05"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-10-01", response.WindowStart)
		s.Equal([]string{"2026-10-02"}, response.BookedDays)
		s.False(response.FullyAvailable)
	})

	s.Run("success: scope is forwarded to the query", func() {
		productID := uuid.New()
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, q queries.AvailabilityQuery) (*queries.AvailabilityView, error) {
				s.Require().NotNil(q.ProductID)
				s.Equal(productID, *q.ProductID)
				s.Equal(promotion.TypeProduct, q.Type)
				return view, nil
			}).Times(1)

		url := "/availability?type=product&product_id=" + productID.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on bad input", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "missing type", url: "/availability"},
			{name: "unknown type", url: "/availability?type=popup"},
			{name: "malformed date", url: "/availability?type=banner&start_date=01-10-2026"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps query errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
		}{
			{name: "inverted range", queriesError: promotion.ErrInvalidRange, expectedStatus: http.StatusBadRequest},
			{name: "scope required", queriesError: promotion.ErrScopeRequired, expectedStatus: http.StatusBadRequest},
			{name: "scope not found", queriesError: errs.ErrScopeNotFound, expectedStatus: http.StatusNotFound},
			{name: "internal server error", queriesError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), gomock.Any()).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?type=banner", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *AvailabilityHandlerTestSuite) TestEstimateCost() {
	view := &queries.CostView{
		Type:             "shop",
		Days:             7,
		DailyChargeCents: 1500,
		AmountCents:      10500,
	}

	s.Run("success: returns 200 OK with the quote", func() {
		s.mockQueries.EXPECT().EstimateCost(gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		url := "/availability/cost?type=shop&start_date=2026-10-01&end_date=2026-10-07"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.CostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(7, response.Days)
		s.Equal(int64(10500), response.AmountCents)
	})

	s.Run("error: 400 Bad Request when dates are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/cost?type=shop", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 Not Found when the type has no configuration", func() {
		s.mockQueries.EXPECT().EstimateCost(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrSlotConfigMissing).Times(1)

		url := "/availability/cost?type=shop&start_date=2026-10-01&end_date=2026-10-07"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No slot configuration")
	})
}
