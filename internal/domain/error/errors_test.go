package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"NegativeAmount", ErrNegativeAmount, 4001},
		{"DepositOutOfRange", ErrDepositOutOfRange, 4002},
		{"InsufficientFunds", ErrInsufficientFunds, 4003},
		{"SoldOut", ErrSoldOut, 4004},
		{"Expired", ErrExpired, 4005},
		{"InvalidOdds", ErrInvalidOdds, 4006},
		{"InvalidListing", ErrInvalidListing, 4007},
		{"DuplicateUser", ErrDuplicateUser, 4008},
		{"AlreadyPurchased", ErrAlreadyPurchased, 4009},
		{"Unauthorized", ErrUnauthorized, 4010},
		{"AuthFailed", ErrAuthFailed, 4011},
		{"ProviderUnavailable", ErrProviderUnavailable, 4011},
		{"TokenExpiredOrUsed", ErrTokenExpiredOrUsed, 4012},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"RecommendationNotFound", ErrRecommendationNotFound, 4040},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInsufficientFunds), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("u-1", "15.99", "10.00")

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Error("expected errors.Is to match ErrInsufficientFunds")
	}

	var rich *InsufficientFundsError
	if !errors.As(err, &rich) {
		t.Fatal("expected errors.As to extract *InsufficientFundsError")
	}
	if rich.UserID != "u-1" || rich.Price != "15.99" || rich.Balance != "10.00" {
		t.Errorf("unexpected fields: %+v", rich)
	}

	fields := rich.LogFields()
	if fields["error_code"] != CodeInsufficientFunds {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInsufficientFunds)
	}
}

func TestSoldOutError(t *testing.T) {
	err := NewSoldOutError("rec-1", 50)

	if !errors.Is(err, ErrSoldOut) {
		t.Error("expected errors.Is to match ErrSoldOut")
	}

	var rich *SoldOutError
	if !errors.As(err, &rich) {
		t.Fatal("expected errors.As to extract *SoldOutError")
	}
	if rich.RecommendationID != "rec-1" || rich.MaxPurchases != 50 {
		t.Errorf("unexpected fields: %+v", rich)
	}
}

func TestNotFoundHelper(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrUserNotFound, ErrRecommendationNotFound, ErrPurchaseNotFound} {
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}
	if IsNotFoundError(ErrUnauthorized) {
		t.Error("IsNotFoundError(ErrUnauthorized) = true, want false")
	}
}
