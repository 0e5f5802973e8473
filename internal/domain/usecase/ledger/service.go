package ledger

import (
	"context"
	"fmt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// Bounds holds the per-transaction deposit limits enforced at the boundary
type Bounds struct {
	MinDepositCents int64
	MaxDepositCents int64
}

// Service is the wallet-ledger store. It owns the balance and the
// append-only transaction history; every balance mutation goes through it.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	idGen        coreport.IDGenerator
	logger       coreport.Logger
	bounds       Bounds
}

// NewService creates a ledger service with the given deposit bounds
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
	bounds Bounds,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		idGen:        idGen,
		logger:       logger,
		bounds:       bounds,
	}
}

// Deposit credits the caller's wallet and appends a completed deposit entry
// as one unit. Amounts outside the configured bounds are rejected before any
// state is touched.
func (s *Service) Deposit(ctx context.Context, identity entity.Identity, amount string) (*entity.User, error) {
	if identity.Anonymous() {
		return nil, errs.ErrUnauthorized
	}

	amountCents, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: deposit must be positive", errs.ErrInvalidAmount)
	}
	if amountCents < s.bounds.MinDepositCents || amountCents > s.bounds.MaxDepositCents {
		return nil, fmt.Errorf("%w: allowed range %s to %s",
			errs.ErrDepositOutOfRange,
			entity.FormatCents(s.bounds.MinDepositCents),
			entity.FormatCents(s.bounds.MaxDepositCents))
	}

	user, err := s.credit(ctx, identity.UserID, amountCents, "Wallet deposit")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit completed", map[string]any{
		"user_id": user.ID,
		"amount":  entity.FormatCents(amountCents),
		"balance": user.FormattedBalance(),
	})
	return user, nil
}

// Grant credits a wallet outside the deposit bounds. Used for the welcome
// bonus on registration and the stand-in starting balance; still recorded as
// a deposit entry so the ledger stays consistent with the balance.
func (s *Service) Grant(ctx context.Context, userID string, amountCents int64, description string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrUnauthorized
	}
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	return s.credit(ctx, userID, amountCents, description)
}

func (s *Service) credit(ctx context.Context, userID string, amountCents int64, description string) (*entity.User, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.uow.Users(txCtx).GetByIDForUpdate(txCtx, userID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := user.Credit(amountCents, s.timeProvider); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Users(txCtx).Update(txCtx, user); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	txn, err := entity.NewTransaction(s.idGen.NewID(), userID, entity.KindDeposit, amountCents, description, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Transactions(txCtx).Create(txCtx, txn); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	return user, nil
}

// Balance returns the caller's current wallet state
func (s *Service) Balance(ctx context.Context, identity entity.Identity) (*entity.User, error) {
	if identity.Anonymous() {
		return nil, errs.ErrUnauthorized
	}
	return s.uow.Users(ctx).GetByID(ctx, identity.UserID)
}

// Transactions returns the caller's ledger history in chronological order
func (s *Service) Transactions(ctx context.Context, identity entity.Identity) ([]*entity.Transaction, error) {
	if identity.Anonymous() {
		return nil, errs.ErrUnauthorized
	}
	return s.uow.Transactions(ctx).ListByUser(ctx, identity.UserID)
}

// Purchases returns the caller's purchase history in insertion order
func (s *Service) Purchases(ctx context.Context, identity entity.Identity) ([]*entity.Purchase, error) {
	if identity.Anonymous() {
		return nil, errs.ErrUnauthorized
	}
	return s.uow.Purchases(ctx).ListByUser(ctx, identity.UserID)
}
