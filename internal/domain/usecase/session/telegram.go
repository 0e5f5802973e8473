package session

import (
	"context"
	"fmt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
)

// TelegramSender identifies the Telegram account behind a bot update
type TelegramSender struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// HandleStart issues a one-time handshake token for the sender and replies
// with an auth link. The token expires after the configured window.
func (s *Service) HandleStart(ctx context.Context, sender TelegramSender, chatID int64) error {
	if sender.ID == 0 {
		return errs.ErrAuthFailed
	}

	token := entity.NewAuthToken(
		s.idGen.NewID(),
		sender.ID,
		sender.Username,
		sender.FirstName,
		sender.LastName,
		s.cfg.HandshakeTokenTTL,
		s.timeProvider,
	)

	if err := s.tokens.Save(ctx, token, s.cfg.HandshakeTokenTTL); err != nil {
		return err
	}

	s.logger.Info("Handshake token issued", map[string]any{
		"telegram_id": sender.ID,
		"expires_at":  token.ExpiresAt,
	})

	if s.bot == nil {
		return nil
	}

	authURL := fmt.Sprintf("%s?token=%s", s.cfg.TelegramAuthLinkBase, token.Token)
	text := fmt.Sprintf(
		"SportXBet Authentication\n\nClick this link to connect your account:\n%s\n\nThis link expires in %d minutes.",
		authURL,
		int(s.cfg.HandshakeTokenTTL.Minutes()),
	)
	return s.bot.SendMessage(ctx, chatID, text)
}

// HandleHelp replies with bot usage
func (s *Service) HandleHelp(ctx context.Context, chatID int64) error {
	if s.bot == nil {
		return nil
	}
	return s.bot.SendMessage(ctx, chatID,
		"SportXBet Bot Commands:\n\n/start - Connect your account\n/help - Show this help message\n\nTo get started, use the /start command!")
}

// RedeemToken exchanges a handshake token for a session. Tokens are strictly
// single-use: the lookup consumes the token, so a second redeem fails with
// ErrTokenExpiredOrUsed no matter how soon it happens.
func (s *Service) RedeemToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errs.ErrTokenExpiredOrUsed
	}

	authToken, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		return nil, err
	}
	if authToken.Expired(s.timeProvider.Now()) {
		return nil, errs.ErrTokenExpiredOrUsed
	}

	user, err := s.users.GetByTelegramID(ctx, authToken.TelegramID)
	if err == nil {
		return s.open(user)
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}

	// First handshake for this Telegram account: provision a linked user.
	user, err = entity.NewUser(
		s.idGen.NewID(),
		fmt.Sprintf("telegram_%d@sportxbet.temp", authToken.TelegramID),
		authToken.DisplayName(),
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	user.TelegramID = authToken.TelegramID

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.cfg.WelcomeBonusCents > 0 {
		user, err = s.ledger.Grant(ctx, user.ID, s.cfg.WelcomeBonusCents, "Welcome bonus")
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Telegram account connected", map[string]any{
		"user_id":     user.ID,
		"telegram_id": authToken.TelegramID,
	})
	return s.open(user)
}
