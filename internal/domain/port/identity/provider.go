package identity

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// Metadata carries optional profile fields supplied at sign-up
type Metadata struct {
	Username   string
	TelegramID int64
}

// Provider is the identity-provider contract consumed by the session layer.
// The session layer never validates credentials itself.
//
// SignIn and SignUp distinguish two failure classes:
// - ErrAuthFailed / ErrDuplicateUser: the provider rejected the request
// - ErrProviderUnavailable: the provider could not be reached; the session
//   layer may degrade to a stand-in provider
type Provider interface {
	// SignIn authenticates existing credentials and returns the user
	SignIn(ctx context.Context, email, password string) (*entity.User, error)

	// SignUp creates a new account and returns the user
	SignUp(ctx context.Context, email, password string, meta Metadata) (*entity.User, error)

	// SignOut invalidates provider-side session state, if any
	SignOut(ctx context.Context, userID string) error
}
