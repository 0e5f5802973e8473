package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest     = 4000
	CodeInvalidAmount      = 4001
	CodeDepositOutOfRange  = 4002
	CodeInsufficientFunds  = 4003
	CodeSoldOut            = 4004
	CodeExpired            = 4005
	CodeInvalidOdds        = 4006
	CodeInvalidListing     = 4007
	CodeDuplicateUser      = 4008
	CodeAlreadyPurchased   = 4009
	CodeUnauthorized       = 4010
	CodeAuthFailed         = 4011
	CodeTokenExpiredOrUsed = 4012
	CodeNotFound           = 4040

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidRequest is returned when a request payload fails binding or validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidAmount is returned when a money amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDepositOutOfRange is returned when a deposit is outside the allowed bounds
	ErrDepositOutOfRange = errors.New("deposit amount out of range")

	// ErrInsufficientFunds is returned when a purchase price exceeds the wallet balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSoldOut is returned when a recommendation has reached its purchase capacity
	ErrSoldOut = errors.New("recommendation is sold out")

	// ErrExpired is returned when a recommendation is past its expiry or no longer active
	ErrExpired = errors.New("recommendation is no longer available")

	// ErrInvalidOdds is returned when an odds value is malformed or below 1.0
	ErrInvalidOdds = errors.New("invalid odds")

	// ErrInvalidListing is returned when recommendation fields fail validation
	ErrInvalidListing = errors.New("invalid recommendation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrRecommendationNotFound is returned when the requested recommendation doesn't exist
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrPurchaseNotFound is returned when the requested purchase doesn't exist
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrUnauthorized is returned when the caller lacks the required identity or role
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthFailed is returned when the identity provider rejects the credentials
	ErrAuthFailed = errors.New("authentication failed")

	// ErrProviderUnavailable is returned when the identity provider itself cannot be reached
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// ErrTokenExpiredOrUsed is returned when a bot handshake token is unknown, expired or consumed
	ErrTokenExpiredOrUsed = errors.New("token expired or already used")

	// ErrDuplicateUser is returned when registering an email that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrAlreadyPurchased is returned when a user buys a recommendation they already own
	ErrAlreadyPurchased = errors.New("recommendation already purchased")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrDepositOutOfRange):
		return CodeDepositOutOfRange
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrSoldOut):
		return CodeSoldOut
	case errors.Is(err, ErrExpired):
		return CodeExpired
	case errors.Is(err, ErrInvalidOdds):
		return CodeInvalidOdds
	case errors.Is(err, ErrInvalidListing):
		return CodeInvalidListing
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrAlreadyPurchased):
		return CodeAlreadyPurchased
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrProviderUnavailable):
		return CodeAuthFailed
	case errors.Is(err, ErrTokenExpiredOrUsed):
		return CodeTokenExpiredOrUsed
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a failed debit
type InsufficientFundsError struct {
	UserID  string
	Price   string
	Balance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: required %s, available %s",
		e.UserID, e.Price, e.Balance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"price":      e.Price,
		"balance":    e.Balance,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID, price, balance string) error {
	return &InsufficientFundsError{
		UserID:  userID,
		Price:   price,
		Balance: balance,
	}
}

// SoldOutError provides detailed information about a capacity-reached purchase attempt
type SoldOutError struct {
	RecommendationID string
	MaxPurchases     int
}

// Error implements the error interface
func (e *SoldOutError) Error() string {
	return fmt.Sprintf("recommendation %s is sold out (capacity %d)",
		e.RecommendationID, e.MaxPurchases)
}

// Is checks if the target error is an ErrSoldOut
func (e *SoldOutError) Is(target error) bool {
	return target == ErrSoldOut
}

// LogFields returns a map of fields for structured logging
func (e *SoldOutError) LogFields() map[string]any {
	return map[string]any{
		"error_type":        "sold_out",
		"recommendation_id": e.RecommendationID,
		"max_purchases":     e.MaxPurchases,
		"error_code":        CodeSoldOut,
	}
}

// NewSoldOutError creates a new detailed sold out error
func NewSoldOutError(recommendationID string, maxPurchases int) error {
	return &SoldOutError{
		RecommendationID: recommendationID,
		MaxPurchases:     maxPurchases,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRecommendationNotFound) ||
		errors.Is(err, ErrPurchaseNotFound)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsSoldOutError checks if the error is a capacity-reached error
func IsSoldOutError(err error) bool {
	return errors.Is(err, ErrSoldOut)
}

// IsUnauthorizedError checks if the error is an authorization failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
