package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	identityport "github.com/sportxbet/tipstore/internal/domain/port/identity"
	"github.com/sportxbet/tipstore/internal/domain/usecase/ledger"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/identity"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/logger"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/tokenstore"
	"github.com/sportxbet/tipstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@sportxbet.com"

// failingProvider simulates a provider that cannot serve any request
type failingProvider struct {
	err error
}

func (p *failingProvider) SignIn(ctx context.Context, email, password string) (*entity.User, error) {
	return nil, p.err
}

func (p *failingProvider) SignUp(ctx context.Context, email, password string, meta identityport.Metadata) (*entity.User, error) {
	return nil, p.err
}

func (p *failingProvider) SignOut(ctx context.Context, userID string) error {
	return p.err
}

type fixture struct {
	svc    *Service
	store  *testutil.MemoryStore
	tp     *testutil.FixedTimeProvider
	bot    *testutil.RecordingBot
	ledger *ledger.Service
}

func testConfig() Config {
	return Config{
		JWTSecret:            []byte("test-secret"),
		SessionTTL:           24 * time.Hour,
		WelcomeBonusCents:    2500, // 25.00
		StandInBalanceCents:  5000, // 50.00
		HandshakeTokenTTL:    10 * time.Minute,
		TelegramAuthLinkBase: "https://sportxbet.example/auth/telegram",
	}
}

// newFixture builds a session service. When primary is nil the local
// credential provider backed by the in-memory store is used.
func newFixture(t *testing.T, primary identityport.Provider) *fixture {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	tp := testutil.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	idGen := testutil.NewSequentialIDGenerator()
	log := logger.NewNoopLogger()
	cfg := testConfig()

	ledgerSvc := ledger.NewService(store, tp, idGen, log, ledger.Bounds{
		MinDepositCents: 1000,
		MaxDepositCents: 5000000,
	})

	if primary == nil {
		primary = identity.NewLocalProvider(store.Users(ctx), tp, idGen, log, adminEmail)
	}
	fallback := identity.NewStandInProvider(store.Users(ctx), ledgerSvc, tp, idGen, log, adminEmail, cfg.StandInBalanceCents)
	bot := testutil.NewRecordingBot()

	svc := NewService(primary, fallback, ledgerSvc, store.Users(ctx), tokenstore.NewMemoryStore(tp), bot, tp, idGen, log, cfg)
	return &fixture{svc: svc, store: store, tp: tp, bot: bot, ledger: ledgerSvc}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates the account and grants the welcome bonus", func(t *testing.T) {
		f := newFixture(t, nil)

		session, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "alice@example.com", session.User.Email)
		assert.Equal(t, "25.00", session.User.FormattedBalance())
		assert.False(t, session.User.Admin)

		entries, err := f.store.Transactions(ctx).ListByUser(ctx, session.User.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.KindDeposit, entries[0].Kind)
		assert.Equal(t, "Welcome bonus", entries[0].Description)
	})

	t.Run("Admin email gets the admin flag", func(t *testing.T) {
		f := newFixture(t, nil)

		session, err := f.svc.Register(ctx, adminEmail, "s3cret", "admin")
		require.NoError(t, err)
		assert.True(t, session.User.Admin)

		parsed, err := f.svc.ParseToken(session.Token)
		require.NoError(t, err)
		assert.True(t, parsed.Admin)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, "alice@example.com", "other", "alice2")
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("Missing fields", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Register(ctx, "", "s3cret", "alice")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
		_, err = f.svc.Register(ctx, "alice@example.com", "", "alice")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
		_, err = f.svc.Register(ctx, "alice@example.com", "s3cret", "")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
	})

	t.Run("Degrades to the stand-in provider when the primary is unreachable", func(t *testing.T) {
		f := newFixture(t, &failingProvider{err: errs.ErrProviderUnavailable})

		session, err := f.svc.Register(ctx, "bob@example.com", "s3cret", "bob")
		require.NoError(t, err)

		// The stand-in sign-up seeds nothing; only the welcome bonus applies
		assert.Equal(t, "25.00", session.User.FormattedBalance())
	})

	t.Run("Provider rejection does not degrade", func(t *testing.T) {
		f := newFixture(t, &failingProvider{err: errs.ErrAuthFailed})

		_, err := f.svc.Register(ctx, "bob@example.com", "s3cret", "bob")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid credentials restore the persisted balance", func(t *testing.T) {
		f := newFixture(t, nil)

		registered, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		_, err = f.ledger.Deposit(ctx, entity.Identity{UserID: registered.User.ID}, "100.00")
		require.NoError(t, err)

		session, err := f.svc.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, session.User.ID)
		assert.Equal(t, "125.00", session.User.FormattedBalance())
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		_, err = f.svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
	})

	t.Run("Unknown email", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.Login(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
	})

	t.Run("Stand-in sign-in provisions unknown users with the starting balance", func(t *testing.T) {
		f := newFixture(t, &failingProvider{err: errs.ErrProviderUnavailable})

		session, err := f.svc.Login(ctx, "carol@example.com", "whatever")
		require.NoError(t, err)
		assert.Equal(t, "50.00", session.User.FormattedBalance())
		assert.Equal(t, "carol", session.User.Username)

		entries, err := f.store.Transactions(ctx).ListByUser(ctx, session.User.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Starting balance", entries[0].Description)
	})

	t.Run("Stand-in sign-in keeps a known user's balance", func(t *testing.T) {
		f := newFixture(t, &failingProvider{err: errs.ErrProviderUnavailable})

		first, err := f.svc.Login(ctx, "carol@example.com", "whatever")
		require.NoError(t, err)
		_, err = f.ledger.Deposit(ctx, entity.Identity{UserID: first.User.ID}, "10.00")
		require.NoError(t, err)

		second, err := f.svc.Login(ctx, "carol@example.com", "whatever")
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)
		assert.Equal(t, "60.00", second.User.FormattedBalance())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticated logout", func(t *testing.T) {
		f := newFixture(t, nil)
		session, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		assert.NoError(t, f.svc.Logout(ctx, entity.Identity{UserID: session.User.ID}))
	})

	t.Run("Anonymous logout is a no-op", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.NoError(t, f.svc.Logout(ctx, entity.Identity{}))
	})
}

func TestParseToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		f := newFixture(t, nil)
		session, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		parsed, err := f.svc.ParseToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, parsed.UserID)
		assert.False(t, parsed.Admin)
		assert.False(t, parsed.Anonymous())
	})

	t.Run("Expired session", func(t *testing.T) {
		f := newFixture(t, nil)
		session, err := f.svc.Register(ctx, "alice@example.com", "s3cret", "alice")
		require.NoError(t, err)

		f.tp.Advance(25 * time.Hour)

		_, err = f.svc.ParseToken(session.Token)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Garbage token", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestTelegramHandshake(t *testing.T) {
	ctx := context.Background()
	sender := TelegramSender{ID: 777, Username: "alice_tips", FirstName: "Alice"}

	// tokenFromMessage pulls the handshake token out of the auth link
	tokenFromMessage := func(t *testing.T, text string) string {
		t.Helper()
		idx := strings.Index(text, "?token=")
		require.GreaterOrEqual(t, idx, 0, "message must carry an auth link")
		rest := text[idx+len("?token="):]
		if end := strings.IndexAny(rest, "\n "); end >= 0 {
			rest = rest[:end]
		}
		return rest
	}

	t.Run("Start issues a one-time token and replies with the link", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))

		msg, ok := f.bot.Last()
		require.True(t, ok)
		assert.Equal(t, int64(4242), msg.ChatID)
		assert.Contains(t, msg.Text, "https://sportxbet.example/auth/telegram?token=")
		assert.Contains(t, msg.Text, "expires in 10 minutes")
	})

	t.Run("Unknown sender is rejected", func(t *testing.T) {
		f := newFixture(t, nil)
		err := f.svc.HandleStart(ctx, TelegramSender{}, 4242)
		assert.ErrorIs(t, err, errs.ErrAuthFailed)
	})

	t.Run("Redeeming provisions a linked account with the welcome bonus", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))
		msg, _ := f.bot.Last()

		session, err := f.svc.RedeemToken(ctx, tokenFromMessage(t, msg.Text))
		require.NoError(t, err)

		assert.Equal(t, "telegram_777@sportxbet.temp", session.User.Email)
		assert.Equal(t, "alice_tips", session.User.Username)
		assert.Equal(t, int64(777), session.User.TelegramID)
		assert.Equal(t, "25.00", session.User.FormattedBalance())

		parsed, err := f.svc.ParseToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, parsed.UserID)
	})

	t.Run("Tokens are single use", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))
		msg, _ := f.bot.Last()
		token := tokenFromMessage(t, msg.Text)

		_, err := f.svc.RedeemToken(ctx, token)
		require.NoError(t, err)

		_, err = f.svc.RedeemToken(ctx, token)
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("Tokens expire after the handshake window", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))
		msg, _ := f.bot.Last()
		token := tokenFromMessage(t, msg.Text)

		f.tp.Advance(11 * time.Minute)

		_, err := f.svc.RedeemToken(ctx, token)
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("A second handshake reuses the linked account", func(t *testing.T) {
		f := newFixture(t, nil)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))
		msg, _ := f.bot.Last()
		first, err := f.svc.RedeemToken(ctx, tokenFromMessage(t, msg.Text))
		require.NoError(t, err)

		require.NoError(t, f.svc.HandleStart(ctx, sender, 4242))
		msg, _ = f.bot.Last()
		second, err := f.svc.RedeemToken(ctx, tokenFromMessage(t, msg.Text))
		require.NoError(t, err)

		assert.Equal(t, first.User.ID, second.User.ID)
		assert.Equal(t, "25.00", second.User.FormattedBalance(), "the welcome bonus is granted once")
	})

	t.Run("Empty token", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.RedeemToken(ctx, "")
		assert.ErrorIs(t, err, errs.ErrTokenExpiredOrUsed)
	})

	t.Run("Help lists the commands", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.svc.HandleHelp(ctx, 4242))

		msg, ok := f.bot.Last()
		require.True(t, ok)
		assert.Contains(t, msg.Text, "/start")
		assert.Contains(t, msg.Text, "/help")
	})
}
