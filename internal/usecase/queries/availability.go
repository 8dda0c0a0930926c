package queries

import (
	"context"
	"time"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/pkg/clock"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityReadStore interface {
	SlotConfigByType(ctx context.Context, t promotion.Type) (*shared.SlotConfigSnapshot, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error)
	ShopByID(ctx context.Context, id uuid.UUID) (*shared.ShopSnapshot, error)
	OccupiedRanges(ctx context.Context, t promotion.Type, scope shared.ScopeFilter, window promotion.DateRange) ([]promotion.DateRange, error)
}

type AvailabilityQuery struct {
	Type      promotion.Type
	ProductID *uuid.UUID
	ShopID    *uuid.UUID
	Start     *time.Time
	End       *time.Time
}

type CostQuery struct {
	Type  promotion.Type
	Start time.Time
	End   time.Time
}

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityView, error)
	EstimateCost(ctx context.Context, q CostQuery) (*CostView, error)
}

type availabilityQueriesImpl struct {
	reads AvailabilityReadStore
	clk   clock.Clock
}

func NewAvailabilityQueries(reads AvailabilityReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, clk: clk}
}

// CheckAvailability reports per-day occupancy of the requested window for one
// promotion type and scope. A type with no slot configuration has zero
// capacity, so every day comes back booked rather than erroring.
func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, query AvailabilityQuery) (*AvailabilityView, error) {
	window, err := promotion.DefaultWindow(q.clk.Now(), query.Start, query.End)
	if err != nil {
		return nil, err
	}

	resolved, err := shared.ResolveScope(ctx, q.reads, query.Type, query.ProductID, query.ShopID)
	if err != nil {
		return nil, err
	}

	capacity := 0
	cfg, err := q.reads.SlotConfigByType(ctx, query.Type)
	switch {
	case err == nil:
		capacity = cfg.DailyCapacity
	case infra.IsKind(err, infra.KindNotFound):
		// keep capacity at zero
	default:
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	occupied, err := q.reads.OccupiedRanges(ctx, query.Type, resolved.Filter, window)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	avail := promotion.ComputeAvailability(capacity, window, occupied)
	return &AvailabilityView{
		Type:           query.Type.String(),
		WindowStart:    window.Start().Format(promotion.DayKeyFormat),
		WindowEnd:      window.End().Format(promotion.DayKeyFormat),
		BookedDays:     dayStrings(avail.Booked),
		AvailableDays:  dayStrings(avail.Available),
		FullyAvailable: len(avail.Booked) == 0,
	}, nil
}

// EstimateCost prices a candidate range without reserving anything. Unlike
// CheckAvailability, a missing slot configuration is an error here because
// there is no charge to quote.
func (q *availabilityQueriesImpl) EstimateCost(ctx context.Context, query CostQuery) (*CostView, error) {
	window, err := promotion.NewDateRange(query.Start, query.End)
	if err != nil {
		return nil, err
	}

	cfg, err := q.reads.SlotConfigByType(ctx, query.Type)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotConfigMissing
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	pricing, err := cfg.Config()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	days := window.DayCount()
	return &CostView{
		Type:             query.Type.String(),
		Days:             days,
		DailyChargeCents: pricing.DailyChargeCents(),
		AmountCents:      pricing.CostFor(days),
	}, nil
}

func dayStrings(days []promotion.DayKey) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
