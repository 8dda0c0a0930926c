package response

import "promo-slot-engine/internal/usecase/queries"

type AvailabilityResponse struct {
	*queries.AvailabilityView
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{AvailabilityView: v}
}

type CostResponse struct {
	*queries.CostView
}

func FromCostView(v *queries.CostView) *CostResponse {
	return &CostResponse{CostView: v}
}
