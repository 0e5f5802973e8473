package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	identityport "github.com/sportxbet/tipstore/internal/domain/port/identity"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// LocalProvider is the primary identity provider: credentials held in the
// user table, passwords hashed with bcrypt.
type LocalProvider struct {
	users        persistence.UserRepository
	timeProvider coreport.TimeProvider
	idGen        coreport.IDGenerator
	logger       coreport.Logger
	adminEmail   string
}

// NewLocalProvider creates a local credential provider. Accounts whose email
// matches adminEmail get the admin flag.
func NewLocalProvider(
	users persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
	adminEmail string,
) *LocalProvider {
	return &LocalProvider{
		users:        users,
		timeProvider: timeProvider,
		idGen:        idGen,
		logger:       logger,
		adminEmail:   adminEmail,
	}
}

// SignIn validates credentials against the stored bcrypt hash
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrAuthFailed
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		// Bot-connected accounts have no password to check
		return nil, errs.ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		p.logger.Warn("Sign-in rejected", map[string]any{"email": email})
		return nil, errs.ErrAuthFailed
	}
	return user, nil
}

// SignUp creates a new account with a hashed password
func (p *LocalProvider) SignUp(ctx context.Context, email, password string, meta identityport.Metadata) (*entity.User, error) {
	if _, err := p.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.ErrDuplicateUser
	} else if !errs.IsNotFoundError(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(p.idGen.NewID(), email, meta.Username, p.timeProvider)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.Admin = email == p.adminEmail
	user.TelegramID = meta.TelegramID

	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}

	p.logger.Info("Account created", map[string]any{
		"user_id": user.ID,
		"admin":   user.Admin,
	})
	return user, nil
}

// SignOut is a no-op for the local provider; sessions are stateless tokens
func (p *LocalProvider) SignOut(ctx context.Context, userID string) error {
	return nil
}
