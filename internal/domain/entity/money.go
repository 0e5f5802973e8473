package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
)

// MaxDecimalPlaces is the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var centsFactor = decimal.NewFromInt(100)

// ParseAmount validates a decimal string amount and converts it to cents.
// Accepts "10", "10.5" and "10.50"; rejects negatives, empty strings and
// anything with more than two decimal places.
func ParseAmount(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidAmount, amount)
	}

	if d.IsNegative() {
		return 0, errs.ErrNegativeAmount
	}

	cents := d.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return cents.IntPart(), nil
}

// FormatCents converts an amount in cents to a decimal string with exactly
// two decimal places. 1599 becomes "15.99", 1000 becomes "10.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseOdds validates a decimal odds string. Odds must be at least 1.0.
func ParseOdds(odds string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(odds)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrInvalidOdds, odds)
	}

	if d.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: must be at least 1.0", errs.ErrInvalidOdds)
	}

	return d, nil
}
