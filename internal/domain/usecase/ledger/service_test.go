package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/logger"
	"github.com/sportxbet/tipstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *testutil.MemoryStore, *testutil.FixedTimeProvider) {
	t.Helper()
	store := testutil.NewMemoryStore()
	tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(store, tp, testutil.NewSequentialIDGenerator(), logger.NewNoopLogger(), Bounds{
		MinDepositCents: 1000,    // 10.00
		MaxDepositCents: 5000000, // 50000.00
	})
	return svc, store, tp
}

func seedUser(t *testing.T, store *testutil.MemoryStore, tp *testutil.FixedTimeProvider, id string) entity.Identity {
	t.Helper()
	user, err := entity.NewUser(id, id+"@example.com", id, tp)
	require.NoError(t, err)
	require.NoError(t, store.Users(context.Background()).Create(context.Background(), user))
	return entity.Identity{UserID: id}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful deposit credits the wallet and the ledger", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		user, err := svc.Deposit(ctx, caller, "50.00")
		require.NoError(t, err)
		assert.Equal(t, "50.00", user.FormattedBalance())

		entries, err := store.Transactions(ctx).ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.KindDeposit, entries[0].Kind)
		assert.Equal(t, int64(5000), entries[0].AmountCents)
		assert.Equal(t, entity.StatusTxCompleted, entries[0].Status)
	})

	t.Run("Anonymous caller is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Deposit(ctx, entity.Identity{}, "50.00")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Below the minimum", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		_, err := svc.Deposit(ctx, caller, "5.00")
		assert.ErrorIs(t, err, errs.ErrDepositOutOfRange)

		entries, _ := store.Transactions(ctx).ListByUser(ctx, "u-1")
		assert.Empty(t, entries, "rejected deposit must leave no ledger entry")
	})

	t.Run("Above the maximum", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		_, err := svc.Deposit(ctx, caller, "50000.01")
		assert.ErrorIs(t, err, errs.ErrDepositOutOfRange)
	})

	t.Run("Bounds are inclusive", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		_, err := svc.Deposit(ctx, caller, "10.00")
		require.NoError(t, err)
		user, err := svc.Deposit(ctx, caller, "50000.00")
		require.NoError(t, err)
		assert.Equal(t, "50010.00", user.FormattedBalance())
	})

	t.Run("Malformed amounts", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		_, err := svc.Deposit(ctx, caller, "abc")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = svc.Deposit(ctx, caller, "-10.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)

		_, err = svc.Deposit(ctx, caller, "10.001")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Unknown user leaves no partial state", func(t *testing.T) {
		svc, store, _ := newTestService(t)

		_, err := svc.Deposit(ctx, entity.Identity{UserID: "ghost"}, "50.00")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		entries, _ := store.Transactions(ctx).ListByUser(ctx, "ghost")
		assert.Empty(t, entries)
	})
}

func TestGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("Grant bypasses deposit bounds", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		seedUser(t, store, tp, "u-1")

		user, err := svc.Grant(ctx, "u-1", 2500, "Welcome bonus")
		require.NoError(t, err)
		assert.Equal(t, "25.00", user.FormattedBalance())

		entries, err := store.Transactions(ctx).ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.KindDeposit, entries[0].Kind)
		assert.Equal(t, "Welcome bonus", entries[0].Description)
	})

	t.Run("Grant rejects non-positive amounts", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		seedUser(t, store, tp, "u-1")

		_, err := svc.Grant(ctx, "u-1", 0, "nothing")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestReadModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Balance and history require a caller", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Balance(ctx, entity.Identity{})
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		_, err = svc.Transactions(ctx, entity.Identity{})
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		_, err = svc.Purchases(ctx, entity.Identity{})
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Transactions come back in order", func(t *testing.T) {
		svc, store, tp := newTestService(t)
		caller := seedUser(t, store, tp, "u-1")

		_, err := svc.Deposit(ctx, caller, "10.00")
		require.NoError(t, err)
		tp.Advance(time.Minute)
		_, err = svc.Deposit(ctx, caller, "20.00")
		require.NoError(t, err)

		entries, err := svc.Transactions(ctx, caller)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(1000), entries[0].AmountCents)
		assert.Equal(t, int64(2000), entries[1].AmountCents)
	})
}
