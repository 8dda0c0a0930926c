//go:build unit

package commands_test

import (
	"context"
	"testing"

	"promo-slot-engine/internal/domain/billing"
	"promo-slot-engine/internal/domain/promotion"
	"promo-slot-engine/internal/pkg/clock"
	"promo-slot-engine/internal/pkg/errs"
	"promo-slot-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*fixture, commands.PaymentCommands, uuid.UUID, uuid.UUID) {
	t.Helper()

	f := newFixture(t)
	payments := commands.NewPaymentCommands(&fakeUoW{store: f.store}, clock.NewMockClock(testNow))

	result, err := f.cmds.Create(context.Background(), f.caller, f.createParams(promotion.StatusConfirm))
	require.NoError(t, err)

	return f, payments, result.PromotionID, *result.TransactionID
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("successful callback confirms the promotion", func(t *testing.T) {
		f, payments, promoID, txnID := newPaymentFixture(t)

		result, err := payments.ConfirmPayment(ctx, txnID)
		require.NoError(t, err)

		assert.Equal(t, promoID, result.PromotionID)
		assert.Equal(t, promotion.StatusConfirm, result.Status)
		assert.False(t, result.AlreadyPaid)

		assert.Equal(t, promotion.StatusConfirm, f.store.promotions[promoID].Status)
		assert.Equal(t, billing.InvoicePaid, f.store.invoices[promoID].Status)
		assert.Equal(t, billing.TransactionSucceeded, f.store.transactions[txnID].Status)

		require.Len(t, f.store.jobs, 1)
		assert.Equal(t, "payment_confirmed", f.store.jobs[0].Topic)
	})

	t.Run("replayed callback is a no-op", func(t *testing.T) {
		f, payments, promoID, txnID := newPaymentFixture(t)

		_, err := payments.ConfirmPayment(ctx, txnID)
		require.NoError(t, err)

		result, err := payments.ConfirmPayment(ctx, txnID)
		require.NoError(t, err)

		assert.True(t, result.AlreadyPaid)
		assert.Equal(t, promotion.StatusConfirm, f.store.promotions[promoID].Status)
		assert.Len(t, f.store.jobs, 1)
	})

	t.Run("slots taken since the intent fail the callback", func(t *testing.T) {
		f, payments, _, txnID := newPaymentFixture(t)

		// fill capacity before the payment lands
		otherProduct := f.store.seedProduct(uuid.New(), f.categoryID)
		for range 2 {
			f.store.seedPromotion(promotion.TypeProduct, promotion.StatusConfirm,
				day(2026, 10, 1), day(2026, 10, 7), &otherProduct, nil, uuid.New())
		}

		_, err := payments.ConfirmPayment(ctx, txnID)
		require.ErrorIs(t, err, errs.ErrSlotUnavailable)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, payments, _, _ := newPaymentFixture(t)

		_, err := payments.ConfirmPayment(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}
