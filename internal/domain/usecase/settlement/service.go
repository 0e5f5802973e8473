package settlement

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// Service is the settlement entry point used by the API layer. It validates
// the caller, then routes the purchase through the per-user queue into the
// settler. A failed purchase leaves every store unchanged.
type Service struct {
	settler *Settler
	queue   *Queue
	logger  coreport.Logger
}

// NewService wires the settler and its queue
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
) *Service {
	settler := NewSettler(uow, timeProvider, idGen, logger)
	queue := NewQueue(logger, settler.Settle)

	return &Service{
		settler: settler,
		queue:   queue,
		logger:  logger,
	}
}

// Purchase buys access to a recommendation for the authenticated caller
func (s *Service) Purchase(ctx context.Context, identity entity.Identity, recommendationID string) (*Receipt, error) {
	if identity.Anonymous() {
		return nil, errs.ErrUnauthorized
	}
	if recommendationID == "" {
		return nil, errs.ErrRecommendationNotFound
	}

	receipt, err := s.queue.Enqueue(ctx, identity.UserID, recommendationID)
	if err != nil {
		s.logger.Warn("Settlement failed", map[string]any{
			"user_id":           identity.UserID,
			"recommendation_id": recommendationID,
			"error":             err.Error(),
		})
		return nil, err
	}
	return receipt, nil
}

// Shutdown drains the per-user settlement workers
func (s *Service) Shutdown() {
	s.queue.Shutdown()
}
