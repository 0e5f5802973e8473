package entity

import (
	"testing"
	"time"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	tp := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("Valid deposit entry", func(t *testing.T) {
		tx, err := NewTransaction("tx-1", "u-1", KindDeposit, 2500, "Wallet deposit", tp)
		require.NoError(t, err)
		assert.Equal(t, StatusTxCompleted, tx.Status)
		assert.Equal(t, "25.00", tx.FormattedAmount())
		assert.True(t, tx.IsCredit())
		assert.False(t, tx.IsDebit())
		assert.Equal(t, tp.now, tx.CreatedAt)
	})

	t.Run("Purchase entries are debits", func(t *testing.T) {
		tx, err := NewTransaction("tx-2", "u-1", KindPurchase, 1599, "Purchased: Home win", tp)
		require.NoError(t, err)
		assert.True(t, tx.IsDebit())
		assert.False(t, tx.IsCredit())
	})

	t.Run("Refund entries are credits", func(t *testing.T) {
		tx, err := NewTransaction("tx-3", "u-1", KindRefund, 1599, "Refund", tp)
		require.NoError(t, err)
		assert.True(t, tx.IsCredit())
	})

	t.Run("Rejects missing user", func(t *testing.T) {
		_, err := NewTransaction("tx-4", "", KindDeposit, 100, "", tp)
		assert.Error(t, err)
	})

	t.Run("Rejects unknown kind", func(t *testing.T) {
		_, err := NewTransaction("tx-5", "u-1", TransactionKind("bonus"), 100, "", tp)
		assert.Error(t, err)
	})

	t.Run("Rejects non-positive amounts", func(t *testing.T) {
		_, err := NewTransaction("tx-6", "u-1", KindDeposit, 0, "", tp)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewTransaction("tx-7", "u-1", KindDeposit, -500, "", tp)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestNewPurchaseSnapshot(t *testing.T) {
	tp := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	rec := validListing(t, tp)

	t.Run("Snapshot copies the listing at purchase time", func(t *testing.T) {
		p := NewPurchase("p-1", "u-1", rec, tp)
		assert.Equal(t, rec.ID, p.RecommendationID)
		assert.Equal(t, rec.Title, p.Title)
		assert.Equal(t, rec.PriceCents, p.PriceCents)
		assert.Equal(t, rec.Odds, p.Odds)
		assert.Equal(t, rec.Content, p.Content)
		assert.Equal(t, ResultPending, p.Result)
		assert.Equal(t, tp.now, p.PurchasedAt)
	})

	t.Run("Snapshot survives later listing edits", func(t *testing.T) {
		p := NewPurchase("p-2", "u-1", rec, tp)

		rec.Title = "Edited title"
		rec.PriceCents = 99999
		rec.Content = "Edited content"

		assert.Equal(t, "Home win and over 2.5 goals", p.Title)
		assert.Equal(t, int64(1599), p.PriceCents)
		assert.Equal(t, "Premium analysis goes here.", p.Content)
	})

	t.Run("Empty premium body gets the placeholder", func(t *testing.T) {
		bare := validListing(t, tp)
		bare.Content = ""
		p := NewPurchase("p-3", "u-1", bare, tp)
		assert.Equal(t, "Premium tip content will be revealed here.", p.Content)
	})
}
