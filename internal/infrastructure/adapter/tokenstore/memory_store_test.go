package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	const ttl = 10 * time.Minute

	newToken := func(tp *testutil.FixedTimeProvider) *entity.AuthToken {
		return entity.NewAuthToken("tok-1", 777, "alice_tips", "Alice", "", ttl, tp)
	}

	t.Run("Redeem consumes the token", func(t *testing.T) {
		tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		store := NewMemoryStore(tp)

		require.NoError(t, store.Save(ctx, newToken(tp), ttl))

		redeemed, err := store.Redeem(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, int64(777), redeemed.TelegramID)
		assert.Equal(t, "alice_tips", redeemed.TelegramUsername)

		_, err = store.Redeem(ctx, "tok-1")
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("Unknown token", func(t *testing.T) {
		tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		store := NewMemoryStore(tp)

		_, err := store.Redeem(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("Expired token cannot be redeemed", func(t *testing.T) {
		tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		store := NewMemoryStore(tp)

		require.NoError(t, store.Save(ctx, newToken(tp), ttl))
		tp.Advance(ttl + time.Second)

		_, err := store.Redeem(ctx, "tok-1")
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("Saved token is copied", func(t *testing.T) {
		tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		store := NewMemoryStore(tp)

		token := newToken(tp)
		require.NoError(t, store.Save(ctx, token, ttl))
		token.TelegramID = 0

		redeemed, err := store.Redeem(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, int64(777), redeemed.TelegramID)
	})
}
