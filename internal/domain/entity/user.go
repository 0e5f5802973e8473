package entity

import (
	"time"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// User represents a storefront account with a wallet balance
type User struct {
	ID           string    // Opaque unique identifier
	Email        string    // Login email
	Username     string    // Display name
	PasswordHash string    // bcrypt hash, empty for bot-connected accounts
	balance      int64     // Balance in cents, private so it only moves through Credit/Debit
	Admin        bool      // Whether the user may manage the catalog
	TelegramID   int64     // Linked Telegram account, 0 if none
	CreatedAt    time.Time // When the user was created
	UpdatedAt    time.Time // When the user was last updated
}

// NewUser creates a new user with the given id and a zero balance
func NewUser(id, email, username string, timeProvider coreport.TimeProvider) (*User, error) {
	if id == "" {
		return nil, errs.ErrUserNotFound
	}
	if email == "" {
		return nil, errs.ErrAuthFailed
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Email:     email,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (u *User) Balance() int64 {
	return u.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatCents(u.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(balanceInCents int64, timeProvider coreport.TimeProvider) {
	u.balance = balanceInCents
	u.UpdatedAt = timeProvider.Now()
}

// CanAfford checks whether the balance covers the given price
func (u *User) CanAfford(priceInCents int64) bool {
	return u.balance >= priceInCents
}

// Credit adds the amount to the balance
func (u *User) Credit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if amountInCents <= 0 {
		return errs.ErrInvalidAmount
	}

	u.balance += amountInCents
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit subtracts the amount from the balance.
// Returns an error if the balance would go negative.
func (u *User) Debit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if amountInCents <= 0 {
		return errs.ErrInvalidAmount
	}
	if u.balance < amountInCents {
		return errs.NewInsufficientFundsError(u.ID, FormatCents(amountInCents), u.FormattedBalance())
	}

	u.balance -= amountInCents
	u.UpdatedAt = timeProvider.Now()
	return nil
}
