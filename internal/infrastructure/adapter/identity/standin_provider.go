package identity

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	identityport "github.com/sportxbet/tipstore/internal/domain/port/identity"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// Grants credits a wallet outside the deposit bounds, recording the credit
// in the ledger. Implemented by the ledger service.
type Grants interface {
	Grant(ctx context.Context, userID string, amountCents int64, description string) (*entity.User, error)
}

// StandInProvider is the degraded authentication path used when the real
// provider cannot be reached. It accepts any non-empty credentials without
// verification, so it must never be the primary provider in production.
// Users it has never seen are provisioned with a fixed starting balance;
// known users keep their persisted balance.
type StandInProvider struct {
	users         persistence.UserRepository
	grants        Grants
	timeProvider  coreport.TimeProvider
	idGen         coreport.IDGenerator
	logger        coreport.Logger
	adminEmail    string
	startingCents int64
}

// NewStandInProvider creates the stand-in provider
func NewStandInProvider(
	users persistence.UserRepository,
	grants Grants,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
	adminEmail string,
	startingCents int64,
) *StandInProvider {
	return &StandInProvider{
		users:         users,
		grants:        grants,
		timeProvider:  timeProvider,
		idGen:         idGen,
		logger:        logger,
		adminEmail:    adminEmail,
		startingCents: startingCents,
	}
}

// SignIn accepts any non-empty credentials. Unknown emails are provisioned
// on the spot with the fixed default balance.
func (p *StandInProvider) SignIn(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, errs.ErrAuthFailed
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}

	return p.provision(ctx, email, usernameFromEmail(email), true)
}

// SignUp provisions an account without verifying anything. No starting
// balance is seeded; the registration flow grants its own welcome bonus.
func (p *StandInProvider) SignUp(ctx context.Context, email, password string, meta identityport.Metadata) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, errs.ErrAuthFailed
	}

	if _, err := p.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.ErrDuplicateUser
	} else if !errs.IsNotFoundError(err) {
		return nil, err
	}

	username := meta.Username
	if username == "" {
		username = usernameFromEmail(email)
	}
	return p.provision(ctx, email, username, false)
}

// SignOut is a no-op
func (p *StandInProvider) SignOut(ctx context.Context, userID string) error {
	return nil
}

func (p *StandInProvider) provision(ctx context.Context, email, username string, seed bool) (*entity.User, error) {
	user, err := entity.NewUser(p.idGen.NewID(), email, username, p.timeProvider)
	if err != nil {
		return nil, err
	}
	user.Admin = email == p.adminEmail

	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}

	p.logger.Warn("Stand-in account provisioned without credential verification", map[string]any{
		"user_id": user.ID,
		"email":   email,
	})

	if seed && p.startingCents > 0 {
		return p.grants.Grant(ctx, user.ID, p.startingCents, "Starting balance")
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
