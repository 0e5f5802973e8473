package settlement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/logger"
	"github.com/sportxbet/tipstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   *Service
	store *testutil.MemoryStore
	tp    *testutil.FixedTimeProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemoryStore()
	tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(store, tp, testutil.NewSequentialIDGenerator(), logger.NewNoopLogger())
	t.Cleanup(svc.Shutdown)
	return &fixture{svc: svc, store: store, tp: tp}
}

func (f *fixture) seedUser(t *testing.T, id string, balanceCents int64) entity.Identity {
	t.Helper()
	ctx := context.Background()
	user, err := entity.NewUser(id, id+"@example.com", id, f.tp)
	require.NoError(t, err)
	if balanceCents > 0 {
		require.NoError(t, user.Credit(balanceCents, f.tp))
	}
	require.NoError(t, f.store.Users(ctx).Create(ctx, user))
	return entity.Identity{UserID: id}
}

func (f *fixture) seedListing(t *testing.T, id, price string, maxPurchases int) *entity.Recommendation {
	t.Helper()
	ctx := context.Background()
	rec, err := entity.NewRecommendation(
		id,
		"Arsenal vs Chelsea - Over 2.5 Goals",
		price,
		"2.10",
		4,
		"Bet365, Unibet",
		f.tp.Now().Add(24*time.Hour),
		maxPurchases,
		false,
		entity.CategoryFootball,
		"Back over 2.5 goals before kick-off.",
		f.tp,
	)
	require.NoError(t, err)
	require.NoError(t, f.store.Recommendations(ctx).Create(ctx, rec))
	return rec
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful settlement applies all four effects", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000) // 50.00
		f.seedListing(t, "rec-1", "15.99", 10)

		receipt, err := f.svc.Purchase(ctx, caller, "rec-1")
		require.NoError(t, err)

		assert.Equal(t, "34.01", receipt.ResultBalance)

		require.NotNil(t, receipt.Purchase)
		assert.Equal(t, "u-1", receipt.Purchase.UserID)
		assert.Equal(t, "rec-1", receipt.Purchase.RecommendationID)
		assert.Equal(t, "Arsenal vs Chelsea - Over 2.5 Goals", receipt.Purchase.Title)
		assert.Equal(t, int64(1599), receipt.Purchase.PriceCents)
		assert.Equal(t, entity.ResultPending, receipt.Purchase.Result)

		require.NotNil(t, receipt.Transaction)
		assert.Equal(t, entity.KindPurchase, receipt.Transaction.Kind)
		assert.Equal(t, int64(1599), receipt.Transaction.AmountCents)
		assert.Equal(t, "Purchased: Arsenal vs Chelsea - Over 2.5 Goals", receipt.Transaction.Description)

		user, err := f.store.Users(ctx).GetByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "34.01", user.FormattedBalance())

		purchases, err := f.store.Purchases(ctx).ListByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Len(t, purchases, 1)

		entries, err := f.store.Transactions(ctx).ListByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		rec, err := f.store.Recommendations(ctx).GetByID(ctx, "rec-1")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.CurrentPurchases)
	})

	t.Run("Insufficient funds leaves every store unchanged", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 1000) // 10.00
		f.seedListing(t, "rec-1", "15.99", 10)

		_, err := f.svc.Purchase(ctx, caller, "rec-1")
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)

		var detailed *errs.InsufficientFundsError
		require.ErrorAs(t, err, &detailed)
		assert.Equal(t, "15.99", detailed.Price)
		assert.Equal(t, "10.00", detailed.Balance)

		user, _ := f.store.Users(ctx).GetByID(ctx, "u-1")
		assert.Equal(t, "10.00", user.FormattedBalance())

		purchases, _ := f.store.Purchases(ctx).ListByUser(ctx, "u-1")
		assert.Empty(t, purchases)
		entries, _ := f.store.Transactions(ctx).ListByUser(ctx, "u-1")
		assert.Empty(t, entries)

		rec, _ := f.store.Recommendations(ctx).GetByID(ctx, "rec-1")
		assert.Equal(t, 0, rec.CurrentPurchases)
	})

	t.Run("Capacity is a hard ceiling", func(t *testing.T) {
		f := newFixture(t)
		const capacity = 3
		f.seedListing(t, "rec-1", "10.00", capacity)

		for i := 0; i < capacity; i++ {
			caller := f.seedUser(t, fmt.Sprintf("u-%d", i), 2000)
			_, err := f.svc.Purchase(ctx, caller, "rec-1")
			require.NoError(t, err)
		}

		late := f.seedUser(t, "u-late", 2000)
		_, err := f.svc.Purchase(ctx, late, "rec-1")
		require.ErrorIs(t, err, errs.ErrSoldOut)

		user, _ := f.store.Users(ctx).GetByID(ctx, "u-late")
		assert.Equal(t, "20.00", user.FormattedBalance())
		purchases, _ := f.store.Purchases(ctx).ListByUser(ctx, "u-late")
		assert.Empty(t, purchases)
		entries, _ := f.store.Transactions(ctx).ListByUser(ctx, "u-late")
		assert.Empty(t, entries)

		rec, _ := f.store.Recommendations(ctx).GetByID(ctx, "rec-1")
		assert.Equal(t, capacity, rec.CurrentPurchases)
	})

	t.Run("Expired listing cannot be purchased", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000)
		f.seedListing(t, "rec-1", "15.99", 10)

		f.tp.Advance(25 * time.Hour)

		_, err := f.svc.Purchase(ctx, caller, "rec-1")
		assert.ErrorIs(t, err, errs.ErrExpired)
	})

	t.Run("Completed listing cannot be purchased", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000)
		rec := f.seedListing(t, "rec-1", "15.99", 10)

		require.NoError(t, rec.Complete(entity.ResultHit, f.tp))
		require.NoError(t, f.store.Recommendations(ctx).Update(ctx, rec))

		_, err := f.svc.Purchase(ctx, caller, "rec-1")
		assert.ErrorIs(t, err, errs.ErrExpired)
	})

	t.Run("Second purchase of the same listing is rejected", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000)
		f.seedListing(t, "rec-1", "15.99", 10)

		_, err := f.svc.Purchase(ctx, caller, "rec-1")
		require.NoError(t, err)

		_, err = f.svc.Purchase(ctx, caller, "rec-1")
		require.ErrorIs(t, err, errs.ErrAlreadyPurchased)

		user, _ := f.store.Users(ctx).GetByID(ctx, "u-1")
		assert.Equal(t, "34.01", user.FormattedBalance(), "second attempt must not debit again")
		rec, _ := f.store.Recommendations(ctx).GetByID(ctx, "rec-1")
		assert.Equal(t, 1, rec.CurrentPurchases)
	})

	t.Run("Unknown recommendation", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000)

		_, err := f.svc.Purchase(ctx, caller, "missing")
		assert.ErrorIs(t, err, errs.ErrRecommendationNotFound)

		_, err = f.svc.Purchase(ctx, caller, "")
		assert.ErrorIs(t, err, errs.ErrRecommendationNotFound)
	})

	t.Run("Anonymous caller", func(t *testing.T) {
		f := newFixture(t)
		f.seedListing(t, "rec-1", "15.99", 10)

		_, err := f.svc.Purchase(ctx, entity.Identity{}, "rec-1")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		rec, _ := f.store.Recommendations(ctx).GetByID(ctx, "rec-1")
		assert.Equal(t, 0, rec.CurrentPurchases)
	})

	t.Run("Snapshot survives a later price edit", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 5000)
		rec := f.seedListing(t, "rec-1", "15.99", 10)

		receipt, err := f.svc.Purchase(ctx, caller, "rec-1")
		require.NoError(t, err)

		rec.PriceCents = 9999
		require.NoError(t, f.store.Recommendations(ctx).Update(ctx, rec))

		purchases, err := f.store.Purchases(ctx).ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, purchases, 1)
		assert.Equal(t, int64(1599), purchases[0].PriceCents)
		assert.Equal(t, receipt.Purchase.ID, purchases[0].ID)
	})

	t.Run("Sequential purchases keep the ledger consistent", func(t *testing.T) {
		f := newFixture(t)
		caller := f.seedUser(t, "u-1", 10000) // 100.00
		f.seedListing(t, "rec-1", "15.99", 0)
		f.seedListing(t, "rec-2", "9.99", 0)

		_, err := f.svc.Purchase(ctx, caller, "rec-1")
		require.NoError(t, err)
		_, err = f.svc.Purchase(ctx, caller, "rec-2")
		require.NoError(t, err)

		user, _ := f.store.Users(ctx).GetByID(ctx, "u-1")
		assert.Equal(t, "74.02", user.FormattedBalance())

		entries, _ := f.store.Transactions(ctx).ListByUser(ctx, "u-1")
		var debits int64
		for _, e := range entries {
			require.True(t, e.IsDebit())
			debits += e.AmountCents
		}
		assert.Equal(t, int64(2598), debits)
	})
}
