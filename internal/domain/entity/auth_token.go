package entity

import (
	"time"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// AuthToken is a short-lived one-time token issued by the bot on /start and
// redeemed once for a session. Strictly single-use: redeeming consumes it.
type AuthToken struct {
	Token             string    `json:"token"`
	TelegramID        int64     `json:"telegramId"`
	TelegramUsername  string    `json:"telegramUsername,omitempty"`
	TelegramFirstName string    `json:"telegramFirstName,omitempty"`
	TelegramLastName  string    `json:"telegramLastName,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

// NewAuthToken issues a handshake token for the given Telegram account
func NewAuthToken(token string, telegramID int64, username, firstName, lastName string, ttl time.Duration, timeProvider coreport.TimeProvider) *AuthToken {
	now := timeProvider.Now()
	return &AuthToken{
		Token:             token,
		TelegramID:        telegramID,
		TelegramUsername:  username,
		TelegramFirstName: firstName,
		TelegramLastName:  lastName,
		CreatedAt:         now,
		ExpiresAt:         now.Add(ttl),
	}
}

// Expired reports whether the token is past its expiry window
func (t *AuthToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// DisplayName derives a human-readable name from the Telegram profile
func (t *AuthToken) DisplayName() string {
	if t.TelegramUsername != "" {
		return t.TelegramUsername
	}
	name := t.TelegramFirstName
	if t.TelegramLastName != "" {
		name += " " + t.TelegramLastName
	}
	return name
}
