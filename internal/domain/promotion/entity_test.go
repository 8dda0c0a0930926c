//go:build unit

package promotion_test

import (
	"testing"

	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/pkg/ptr"
	"promo-slot-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.PromotionBuilder)
	errIs  error
}

func TestNewPromotion(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewPromotionBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, promotion.StatusDraft, actual.Status())
		assert.False(t, actual.ConsumesCapacity())
	})

	t.Run("scope validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "product type requires product reference",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeProduct).WithProductID(nil)
				},
				errIs: promotion.ErrScopeRequired,
			},
			{
				name: "product type rejects shop reference",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeProduct).WithShopID(ptr.Ptr(uuid.New()))
				},
				errIs: promotion.ErrScopeNotAllowed,
			},
			{
				name: "shop type requires shop reference",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeShop).WithProductID(nil)
				},
				errIs: promotion.ErrScopeRequired,
			},
			{
				name: "shop type with shop reference only",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeShop).WithProductID(nil).WithShopID(ptr.Ptr(uuid.New()))
				},
			},
			{
				name: "banner type rejects any scope reference",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeBanner)
				},
				errIs: promotion.ErrScopeNotAllowed,
			},
			{
				name: "banner type with no scope",
				mutate: func(b *builder.PromotionBuilder) {
					b.WithType(promotion.TypeBanner).WithProductID(nil)
				},
			},
		})
	})

	t.Run("ownership validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing merchant",
				mutate: func(b *builder.PromotionBuilder) { b.WithMerchantID(uuid.Nil) },
				errIs:  promotion.ErrOwnerRequired,
			},
			{
				name:   "missing user",
				mutate: func(b *builder.PromotionBuilder) { b.WithUserID(uuid.Nil) },
				errIs:  promotion.ErrOwnerRequired,
			},
		})
	})

	t.Run("invalid type", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unknown type string",
				mutate: func(b *builder.PromotionBuilder) { b.WithType(promotion.Type("popup")) },
				errIs:  promotion.ErrInvalidType,
			},
		})
	})
}

func TestPromotionOwnership(t *testing.T) {
	merchantID := uuid.New()
	p, err := builder.NewPromotionBuilder().WithMerchantID(merchantID).BuildDomain()
	require.NoError(t, err)

	assert.True(t, p.IsOwnedBy(merchantID))
	assert.False(t, p.IsOwnedBy(uuid.New()))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewPromotionBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
