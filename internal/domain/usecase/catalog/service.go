package catalog

import (
	"context"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// CreateInput carries the fields for a new listing
type CreateInput struct {
	Title        string
	Price        string
	Odds         string
	Confidence   int
	BettingSites string
	ExpiresAt    time.Time
	MaxPurchases int
	Urgent       bool
	Category     string
	Content      string
}

// Service is the catalog store. Admin operations mutate listings; the
// settlement saga is the only other writer (capacity counter).
type Service struct {
	uow            persistence.UnitOfWork
	timeProvider   coreport.TimeProvider
	idGen          coreport.IDGenerator
	logger         coreport.Logger
	cascadeResults bool
}

// NewService creates a catalog service. When cascadeResults is set, marking
// a listing's outcome also tags every existing purchase of it.
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	idGen coreport.IDGenerator,
	logger coreport.Logger,
	cascadeResults bool,
) *Service {
	return &Service{
		uow:            uow,
		timeProvider:   timeProvider,
		idGen:          idGen,
		logger:         logger,
		cascadeResults: cascadeResults,
	}
}

func requireAdmin(identity entity.Identity) error {
	if identity.Anonymous() || !identity.Admin {
		return errs.ErrUnauthorized
	}
	return nil
}

// Create adds a new active listing. Admin only.
func (s *Service) Create(ctx context.Context, identity entity.Identity, input CreateInput) (*entity.Recommendation, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	rec, err := entity.NewRecommendation(
		s.idGen.NewID(),
		input.Title,
		input.Price,
		input.Odds,
		input.Confidence,
		input.BettingSites,
		input.ExpiresAt,
		input.MaxPurchases,
		input.Urgent,
		entity.Category(input.Category),
		input.Content,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Recommendations(ctx).Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("Recommendation created", map[string]any{
		"recommendation_id": rec.ID,
		"title":             rec.Title,
		"price":             rec.FormattedPrice(),
	})
	return rec, nil
}

// Update merges a typed partial update into a listing. Admin only. Existing
// purchase snapshots are never re-validated or altered.
func (s *Service) Update(ctx context.Context, identity entity.Identity, id string, patch RecommendationPatch) (*entity.Recommendation, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	rec, err := s.uow.Recommendations(ctx).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.apply(rec, s.timeProvider); err != nil {
		return nil, err
	}

	if err := s.uow.Recommendations(ctx).Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a listing. Admin only. Purchase records referencing it are
// retained; their denormalized snapshots keep them fully renderable.
func (s *Service) Delete(ctx context.Context, identity entity.Identity, id string) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if err := s.uow.Recommendations(ctx).Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Recommendation deleted", map[string]any{
		"recommendation_id": id,
	})
	return nil
}

// MarkResult completes a listing with the given outcome. Admin only.
// Cascading the outcome onto existing purchases is a configuration choice.
func (s *Service) MarkResult(ctx context.Context, identity entity.Identity, id, outcome string) (*entity.Recommendation, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if !entity.IsValidResult(outcome) {
		return nil, errs.ErrInvalidListing
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.uow.Recommendations(txCtx).GetByIDForUpdate(txCtx, id)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := rec.Complete(entity.Result(outcome), s.timeProvider); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Recommendations(txCtx).Update(txCtx, rec); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if s.cascadeResults {
		if err := s.uow.Purchases(txCtx).UpdateResultByRecommendation(txCtx, rec.ID, rec.Result); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Recommendation result marked", map[string]any{
		"recommendation_id": rec.ID,
		"result":            string(rec.Result),
		"cascaded":          s.cascadeResults,
	})
	return rec, nil
}

// Active returns the purchasable listings: status active and not past expiry
func (s *Service) Active(ctx context.Context) ([]*entity.Recommendation, error) {
	all, err := s.uow.Recommendations(ctx).List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	active := make([]*entity.Recommendation, 0, len(all))
	for _, rec := range all {
		if rec.IsActive(now) {
			active = append(active, rec)
		}
	}
	return active, nil
}

// List returns every listing in insertion order. Admin only.
func (s *Service) List(ctx context.Context, identity entity.Identity) ([]*entity.Recommendation, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	return s.uow.Recommendations(ctx).List(ctx)
}

// Get returns one listing by id
func (s *Service) Get(ctx context.Context, id string) (*entity.Recommendation, error) {
	return s.uow.Recommendations(ctx).GetByID(ctx, id)
}
