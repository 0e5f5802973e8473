package persistence

import (
	"context"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// TokenStore holds short-lived one-time bot handshake tokens.
type TokenStore interface {
	// Save stores a token that disappears after ttl
	Save(ctx context.Context, token *entity.AuthToken, ttl time.Duration) error

	// Redeem atomically looks up and consumes a token. A token can be
	// redeemed at most once; a second redeem, or a redeem past expiry,
	// fails with ErrTokenExpiredOrUsed.
	Redeem(ctx context.Context, token string) (*entity.AuthToken, error)
}
