package entity

import (
	"testing"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"15.99", 1599},
			{"1234567.89", 123456789},
			{"0.00", 0},
			{"0", 0},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestFormatCents(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{1599, "15.99"},
		{0, "0.00"},
		{150, "1.50"},
		{3401, "34.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCents(tc.cents))
		})
	}
}

func TestParseOdds(t *testing.T) {
	t.Run("Valid odds", func(t *testing.T) {
		for _, input := range []string{"1", "1.0", "1.72", "2.10", "150"} {
			t.Run(input, func(t *testing.T) {
				_, err := ParseOdds(input)
				assert.NoError(t, err)
			})
		}
	})

	t.Run("Below one", func(t *testing.T) {
		_, err := ParseOdds("0.95")
		assert.ErrorIs(t, err, errs.ErrInvalidOdds)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseOdds("evens")
		assert.ErrorIs(t, err, errs.ErrInvalidOdds)
	})
}
