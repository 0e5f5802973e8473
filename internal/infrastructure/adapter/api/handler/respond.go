package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// httpStatus maps a domain error onto an HTTP status code
func httpStatus(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsUnauthorizedError(err),
		errors.Is(err, domainerr.ErrAuthFailed),
		errors.Is(err, domainerr.ErrTokenExpiredOrUsed):
		return http.StatusUnauthorized
	case domainerr.IsInsufficientFundsError(err):
		return http.StatusPaymentRequired
	case domainerr.IsSoldOutError(err),
		errors.Is(err, domainerr.ErrExpired),
		errors.Is(err, domainerr.ErrDuplicateUser),
		errors.Is(err, domainerr.ErrAlreadyPurchased):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrDepositOutOfRange),
		errors.Is(err, domainerr.ErrInvalidOdds),
		errors.Is(err, domainerr.ErrInvalidListing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error payload for a domain error.
// Internal errors are masked; everything else carries its own message.
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// failureReason labels a settlement failure for the metrics counter
func failureReason(err error) string {
	switch {
	case domainerr.IsInsufficientFundsError(err):
		return "insufficient_funds"
	case domainerr.IsSoldOutError(err):
		return "sold_out"
	case errors.Is(err, domainerr.ErrExpired):
		return "expired"
	case errors.Is(err, domainerr.ErrAlreadyPurchased):
		return "already_purchased"
	case domainerr.IsNotFoundError(err):
		return "not_found"
	case domainerr.IsUnauthorizedError(err):
		return "unauthorized"
	default:
		return "internal"
	}
}

// respondBadRequest writes a 400 for malformed request payloads
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: message,
	})
}
