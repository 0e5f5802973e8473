package entity

import (
	"testing"
	"time"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing(t *testing.T, tp *stubClock) *Recommendation {
	t.Helper()
	rec, err := NewRecommendation(
		"rec-1",
		"Home win and over 2.5 goals",
		"15.99",
		"2.10",
		4,
		"bet365",
		tp.now.Add(24*time.Hour),
		3,
		false,
		CategoryFootball,
		"Premium analysis goes here.",
		tp,
	)
	require.NoError(t, err)
	return rec
}

func TestNewRecommendation(t *testing.T) {
	tp := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("Valid listing", func(t *testing.T) {
		rec := validListing(t, tp)
		assert.Equal(t, int64(1599), rec.PriceCents)
		assert.Equal(t, "15.99", rec.FormattedPrice())
		assert.Equal(t, "2.1", rec.Odds)
		assert.Equal(t, StatusActive, rec.Status)
		assert.Equal(t, ResultPending, rec.Result)
		assert.Equal(t, 0, rec.CurrentPurchases)
	})

	t.Run("Validation failures", func(t *testing.T) {
		expiry := tp.now.Add(time.Hour)
		testCases := []struct {
			name       string
			title      string
			price      string
			odds       string
			confidence int
			capacity   int
			category   Category
			errorType  error
		}{
			{"Empty title", "", "10.00", "2.0", 3, 0, CategoryFootball, errs.ErrInvalidListing},
			{"Zero price", "t", "0.00", "2.0", 3, 0, CategoryFootball, errs.ErrInvalidAmount},
			{"Negative price", "t", "-5.00", "2.0", 3, 0, CategoryFootball, errs.ErrNegativeAmount},
			{"Sub-cent price", "t", "1.999", "2.0", 3, 0, CategoryFootball, errs.ErrInvalidAmount},
			{"Odds below one", "t", "10.00", "0.9", 3, 0, CategoryFootball, errs.ErrInvalidOdds},
			{"Confidence too low", "t", "10.00", "2.0", 0, 0, CategoryFootball, errs.ErrInvalidListing},
			{"Confidence too high", "t", "10.00", "2.0", 6, 0, CategoryFootball, errs.ErrInvalidListing},
			{"Unknown category", "t", "10.00", "2.0", 3, 0, Category("esports"), errs.ErrInvalidListing},
			{"Negative capacity", "t", "10.00", "2.0", 3, -1, CategoryFootball, errs.ErrInvalidListing},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewRecommendation("rec-x", tc.title, tc.price, tc.odds, tc.confidence,
					"", expiry, tc.capacity, false, tc.category, "", tp)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestRecommendationLifecycle(t *testing.T) {
	tp := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("Active until expiry", func(t *testing.T) {
		rec := validListing(t, tp)
		assert.True(t, rec.IsActive(tp.now))
		assert.False(t, rec.IsActive(tp.now.Add(24*time.Hour)), "expiry instant itself is not purchasable")
		assert.False(t, rec.IsActive(tp.now.Add(25*time.Hour)))
	})

	t.Run("Zero expiry never expires", func(t *testing.T) {
		rec := validListing(t, tp)
		rec.ExpiresAt = time.Time{}
		assert.True(t, rec.IsActive(tp.now.AddDate(10, 0, 0)))
		assert.Equal(t, time.Duration(0), rec.TimeRemaining(tp.now))
	})

	t.Run("Completed listing is not active", func(t *testing.T) {
		rec := validListing(t, tp)
		require.NoError(t, rec.Complete(ResultHit, tp))
		assert.Equal(t, StatusCompleted, rec.Status)
		assert.Equal(t, ResultHit, rec.Result)
		assert.False(t, rec.IsActive(tp.now))
	})

	t.Run("Complete rejects pending as an outcome", func(t *testing.T) {
		rec := validListing(t, tp)
		assert.ErrorIs(t, rec.Complete(ResultPending, tp), errs.ErrInvalidListing)
	})

	t.Run("TimeRemaining counts down and floors at zero", func(t *testing.T) {
		rec := validListing(t, tp)
		assert.Equal(t, 24*time.Hour, rec.TimeRemaining(tp.now))
		assert.Equal(t, time.Hour, rec.TimeRemaining(tp.now.Add(23*time.Hour)))
		assert.Equal(t, time.Duration(0), rec.TimeRemaining(tp.now.Add(48*time.Hour)))
	})
}

func TestRecommendationCapacity(t *testing.T) {
	tp := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("Counter stops at capacity", func(t *testing.T) {
		rec := validListing(t, tp) // capacity 3

		for i := 0; i < 3; i++ {
			require.NoError(t, rec.RecordPurchase(tp))
		}
		assert.True(t, rec.IsSoldOut())

		err := rec.RecordPurchase(tp)
		assert.ErrorIs(t, err, errs.ErrSoldOut)
		assert.Equal(t, 3, rec.CurrentPurchases, "capacity overflow must not move the counter")
	})

	t.Run("Zero capacity means unlimited", func(t *testing.T) {
		rec := validListing(t, tp)
		rec.MaxPurchases = 0

		for i := 0; i < 100; i++ {
			require.NoError(t, rec.RecordPurchase(tp))
		}
		assert.False(t, rec.IsSoldOut())
	})
}

func TestCategoryAndResultValidation(t *testing.T) {
	assert.True(t, IsValidCategory("football"))
	assert.True(t, IsValidCategory("other"))
	assert.False(t, IsValidCategory("esports"))
	assert.False(t, IsValidCategory(""))

	assert.True(t, IsValidResult("hit"))
	assert.True(t, IsValidResult("miss"))
	assert.False(t, IsValidResult("pending"))
	assert.False(t, IsValidResult("won"))
}
