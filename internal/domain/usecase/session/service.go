package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	identityport "github.com/sportxbet/tipstore/internal/domain/port/identity"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
	"github.com/sportxbet/tipstore/internal/domain/usecase/ledger"
)

// Config holds session-layer settings
type Config struct {
	JWTSecret            []byte
	SessionTTL           time.Duration
	WelcomeBonusCents    int64 // Granted once on registration
	StandInBalanceCents  int64 // Starting balance on the degraded auth path
	HandshakeTokenTTL    time.Duration
	TelegramAuthLinkBase string // Base URL the bot hands out, token appended
}

// Session is an authenticated session handed back to the presentation layer
type Session struct {
	Token string
	User  *entity.User
}

// claims is the JWT payload for a session token
type claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Service owns the authenticated identity lifecycle. Credential validation
// is delegated to the identity provider; when the provider is unreachable
// the service degrades to the stand-in provider, which is explicitly weaker
// and logged as such.
type Service struct {
	primary      identityport.Provider
	fallback     identityport.Provider
	ledger       *ledger.Service
	users        persistence.UserRepository
	tokens       persistence.TokenStore
	bot          identityport.BotMessenger
	timeProvider coreport.TimeProvider
	idGen        coreport.IDGenerator
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a session service. fallback and bot may be nil when the
// degraded path or the Telegram handshake is not configured.
func NewService(
	primary identityport.Provider,
	fallback identityport.Provider,
	ledgerSvc *ledger.Service,
	users persistence.UserRepository,
	tokens persistence.TokenStore,
	bot identityport.BotMessenger,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
	cfg Config,
) *Service {
	return &Service{
		primary:      primary,
		fallback:     fallback,
		ledger:       ledgerSvc,
		users:        users,
		tokens:       tokens,
		bot:          bot,
		timeProvider: timeProvider,
		idGen:        idGen,
		logger:       logger,
		cfg:          cfg,
	}
}

// Register creates an account and seeds the welcome bonus
func (s *Service) Register(ctx context.Context, email, password, username string) (*Session, error) {
	if email == "" || password == "" || username == "" {
		return nil, errs.ErrAuthFailed
	}

	user, err := s.primary.SignUp(ctx, email, password, identityport.Metadata{Username: username})
	if err != nil {
		if errors.Is(err, errs.ErrProviderUnavailable) && s.fallback != nil {
			s.logger.Warn("Identity provider unavailable, degrading to stand-in sign-up", map[string]any{
				"email": email,
				"error": err.Error(),
			})
			user, err = s.fallback.SignUp(ctx, email, password, identityport.Metadata{Username: username})
		}
		if err != nil {
			return nil, err
		}
	}

	if s.cfg.WelcomeBonusCents > 0 {
		user, err = s.ledger.Grant(ctx, user.ID, s.cfg.WelcomeBonusCents, "Welcome bonus")
		if err != nil {
			return nil, err
		}
	}

	return s.open(user)
}

// Login authenticates existing credentials. The persisted balance is always
// restored; only the stand-in path seeds a fixed default for users it has
// never seen.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errs.ErrAuthFailed
	}

	user, err := s.primary.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, errs.ErrProviderUnavailable) && s.fallback != nil {
			s.logger.Warn("Identity provider unavailable, degrading to stand-in sign-in", map[string]any{
				"email": email,
				"error": err.Error(),
			})
			user, err = s.fallback.SignIn(ctx, email, password)
		}
		if err != nil {
			return nil, err
		}
	}

	return s.open(user)
}

// Logout clears the session back to anonymous. Purchase and transaction
// history stays keyed by user id for the next login.
func (s *Service) Logout(ctx context.Context, identity entity.Identity) error {
	if identity.Anonymous() {
		return nil
	}
	return s.primary.SignOut(ctx, identity.UserID)
}

// open issues a signed session token for the user
func (s *Service) open(user *entity.User) (*Session, error) {
	now := s.timeProvider.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
	})

	signed, err := token.SignedString(s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: signing session token: %s", errs.ErrInternalServer, err.Error())
	}

	return &Session{Token: signed, User: user}, nil
}

// ParseToken validates a bearer token and returns the caller identity
func (s *Service) ParseToken(tokenString string) (entity.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.JWTSecret, nil
	}, jwt.WithTimeFunc(s.timeProvider.Now))
	if err != nil || !token.Valid {
		return entity.Identity{}, errs.ErrUnauthorized
	}

	return entity.Identity{UserID: c.Subject, Admin: c.Admin}, nil
}
