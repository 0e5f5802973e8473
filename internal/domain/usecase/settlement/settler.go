package settlement

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// Receipt is the outcome of a successful settlement
type Receipt struct {
	Purchase      *entity.Purchase
	Transaction   *entity.Transaction
	ResultBalance string
}

// Settler executes the purchase saga: validate the listing, validate the
// wallet, then apply the debit, the purchase snapshot, the ledger entry and
// the capacity increment as one indivisible unit. Any failure rolls the
// whole thing back; no partial effect is ever observable.
type Settler struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	idGen        coreport.IDGenerator
	logger       coreport.Logger
}

// NewSettler creates a settler bound to the given unit of work
func NewSettler(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
) *Settler {
	return &Settler{
		uow:          uow,
		timeProvider: timeProvider,
		idGen:        idGen,
		logger:       logger,
	}
}

// Settle purchases the recommendation for the user
func (s *Settler) Settle(ctx context.Context, userID, recommendationID string) (*Receipt, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := s.settle(txCtx, userID, recommendationID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase settled", map[string]any{
		"user_id":           userID,
		"recommendation_id": recommendationID,
		"purchase_id":       receipt.Purchase.ID,
		"price":             receipt.Purchase.FormattedPrice(),
		"result_balance":    receipt.ResultBalance,
	})
	return receipt, nil
}

func (s *Settler) settle(txCtx context.Context, userID, recommendationID string) (*Receipt, error) {
	// Row lock on the listing so the capacity check and the increment
	// cannot race another settlement of the same tip.
	rec, err := s.uow.Recommendations(txCtx).GetByIDForUpdate(txCtx, recommendationID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if !rec.IsActive(now) {
		return nil, errs.ErrExpired
	}
	if rec.IsSoldOut() {
		return nil, errs.NewSoldOutError(rec.ID, rec.MaxPurchases)
	}

	owned, err := s.uow.Purchases(txCtx).ExistsForUser(txCtx, userID, rec.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, errs.ErrAlreadyPurchased
	}

	user, err := s.uow.Users(txCtx).GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanAfford(rec.PriceCents) {
		return nil, errs.NewInsufficientFundsError(user.ID, rec.FormattedPrice(), user.FormattedBalance())
	}

	if err := user.Debit(rec.PriceCents, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.uow.Users(txCtx).Update(txCtx, user); err != nil {
		return nil, err
	}

	purchase := entity.NewPurchase(s.idGen.NewID(), user.ID, rec, s.timeProvider)
	if err := s.uow.Purchases(txCtx).Create(txCtx, purchase); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(
		s.idGen.NewID(),
		user.ID,
		entity.KindPurchase,
		rec.PriceCents,
		"Purchased: "+rec.Title,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Transactions(txCtx).Create(txCtx, txn); err != nil {
		return nil, err
	}

	if err := rec.RecordPurchase(s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.uow.Recommendations(txCtx).Update(txCtx, rec); err != nil {
		return nil, err
	}

	return &Receipt{
		Purchase:      purchase,
		Transaction:   txn,
		ResultBalance: user.FormattedBalance(),
	}, nil
}
