//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/infra"
	"promo-slot-engine/internal/pkg/clock"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/pkg/ptr"
	"promo-slot-engine/internal/usecase/queries"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeAvailabilityReads struct {
	configs  map[promotion.Type]shared.SlotConfigSnapshot
	products map[uuid.UUID]shared.ProductSnapshot
	shops    map[uuid.UUID]shared.ShopSnapshot
	occupied []promotion.DateRange

	gotScope  shared.ScopeFilter
	gotWindow promotion.DateRange
}

func (r *fakeAvailabilityReads) SlotConfigByType(_ context.Context, t promotion.Type) (*shared.SlotConfigSnapshot, error) {
	cfg, ok := r.configs[t]
	if !ok {
		return nil, infra.WrapRepoErr("slot config", nil, infra.KindNotFound)
	}
	return &cfg, nil
}

func (r *fakeAvailabilityReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *fakeAvailabilityReads) ShopByID(_ context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, infra.WrapRepoErr("shop", nil, infra.KindNotFound)
	}
	return &s, nil
}

func (r *fakeAvailabilityReads) OccupiedRanges(_ context.Context, _ promotion.Type, scope shared.ScopeFilter, window promotion.DateRange) ([]promotion.DateRange, error) {
	r.gotScope = scope
	r.gotWindow = window
	return r.occupied, nil
}

func newAvailabilityFixture() (*fakeAvailabilityReads, queries.AvailabilityQueries) {
	reads := &fakeAvailabilityReads{
		configs:  make(map[promotion.Type]shared.SlotConfigSnapshot),
		products: make(map[uuid.UUID]shared.ProductSnapshot),
		shops:    make(map[uuid.UUID]shared.ShopSnapshot),
	}
	return reads, queries.NewAvailabilityQueries(reads, clock.NewMockClock(testNow))
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("banner window with explicit bounds", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeBanner] = shared.SlotConfigSnapshot{Type: promotion.TypeBanner, DailyCapacity: 1}
		occupied, err := promotion.NewDateRange(day(2026, 10, 2), day(2026, 10, 3))
		require.NoError(t, err)
		reads.occupied = []promotion.DateRange{occupied}

		view, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{
			Type:  promotion.TypeBanner,
			Start: ptr.Ptr(day(2026, 10, 1)),
			End:   ptr.Ptr(day(2026, 10, 5)),
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-10-01", view.WindowStart)
		assert.Equal(t, "2026-10-05", view.WindowEnd)
		assert.Equal(t, []string{"2026-10-02", "2026-10-03"}, view.BookedDays)
		assert.Equal(t, []string{"2026-10-01", "2026-10-04", "2026-10-05"}, view.AvailableDays)
		assert.False(t, view.FullyAvailable)
	})

	t.Run("omitted bounds default to the look-ahead window", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeBanner] = shared.SlotConfigSnapshot{Type: promotion.TypeBanner, DailyCapacity: 1}

		view, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{Type: promotion.TypeBanner})
		require.NoError(t, err)

		assert.Equal(t, "2026-09-02", view.WindowStart)
		assert.Equal(t, "2026-11-02", view.WindowEnd)
		assert.True(t, view.FullyAvailable)
	})

	t.Run("product scope resolves to its category", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeProduct] = shared.SlotConfigSnapshot{Type: promotion.TypeProduct, DailyCapacity: 2}
		categoryID := uuid.New()
		productID := uuid.New()
		reads.products[productID] = shared.ProductSnapshot{ID: productID, MerchantID: uuid.New(), CategoryID: categoryID}

		_, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{
			Type:      promotion.TypeProduct,
			ProductID: &productID,
		})
		require.NoError(t, err)

		require.NotNil(t, reads.gotScope.CategoryID)
		assert.Equal(t, categoryID, *reads.gotScope.CategoryID)
	})

	t.Run("unknown product is a hard error", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeProduct] = shared.SlotConfigSnapshot{Type: promotion.TypeProduct, DailyCapacity: 2}

		_, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{
			Type:      promotion.TypeProduct,
			ProductID: ptr.Ptr(uuid.New()),
		})
		require.ErrorIs(t, err, errs.ErrScopeNotFound)
	})

	t.Run("missing config reports every day booked", func(t *testing.T) {
		_, q := newAvailabilityFixture()

		view, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{
			Type:  promotion.TypeBanner,
			Start: ptr.Ptr(day(2026, 10, 1)),
			End:   ptr.Ptr(day(2026, 10, 3)),
		})
		require.NoError(t, err)

		assert.Len(t, view.BookedDays, 3)
		assert.Empty(t, view.AvailableDays)
		assert.False(t, view.FullyAvailable)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, q := newAvailabilityFixture()

		_, err := q.CheckAvailability(ctx, queries.AvailabilityQuery{
			Type:  promotion.TypeBanner,
			Start: ptr.Ptr(day(2026, 10, 5)),
			End:   ptr.Ptr(day(2026, 10, 1)),
		})
		require.ErrorIs(t, err, promotion.ErrInvalidRange)
	})
}

func TestEstimateCost(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the inclusive day count", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeShop] = shared.SlotConfigSnapshot{Type: promotion.TypeShop, DailyCapacity: 1, DailyChargeCents: 1500}

		view, err := q.EstimateCost(ctx, queries.CostQuery{
			Type:  promotion.TypeShop,
			Start: day(2026, 10, 1),
			End:   day(2026, 10, 7),
		})
		require.NoError(t, err)

		assert.Equal(t, 7, view.Days)
		assert.Equal(t, int64(1500), view.DailyChargeCents)
		assert.Equal(t, int64(10500), view.AmountCents)
	})

	t.Run("single day costs one daily charge", func(t *testing.T) {
		reads, q := newAvailabilityFixture()
		reads.configs[promotion.TypeShop] = shared.SlotConfigSnapshot{Type: promotion.TypeShop, DailyChargeCents: 1500}

		view, err := q.EstimateCost(ctx, queries.CostQuery{
			Type:  promotion.TypeShop,
			Start: day(2026, 10, 1),
			End:   day(2026, 10, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1500), view.AmountCents)
	})

	t.Run("missing config cannot be priced", func(t *testing.T) {
		_, q := newAvailabilityFixture()

		_, err := q.EstimateCost(ctx, queries.CostQuery{
			Type:  promotion.TypeShop,
			Start: day(2026, 10, 1),
			End:   day(2026, 10, 7),
		})
		require.ErrorIs(t, err, errs.ErrSlotConfigMissing)
	})
}
