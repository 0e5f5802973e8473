package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationRepository implements the catalog repository port using GORM
type RecommendationRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRecommendationRepository creates a new RecommendationRepository instance
func NewRecommendationRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *RecommendationRepository) modelToEntity(m *model.Recommendation) *entity.Recommendation {
	return &entity.Recommendation{
		ID:               m.ID,
		Title:            m.Title,
		PriceCents:       m.PriceCents,
		Odds:             m.Odds,
		Confidence:       m.Confidence,
		BettingSites:     m.BettingSites,
		ExpiresAt:        m.ExpiresAt,
		MaxPurchases:     m.MaxPurchases,
		CurrentPurchases: m.CurrentPurchases,
		Urgent:           m.Urgent,
		Category:         entity.Category(m.Category),
		Content:          m.Content,
		Status:           entity.ListingStatus(m.Status),
		Result:           entity.Result(m.Result),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *RecommendationRepository) entityToModel(rec *entity.Recommendation) *model.Recommendation {
	return &model.Recommendation{
		ID:               rec.ID,
		Title:            rec.Title,
		PriceCents:       rec.PriceCents,
		Odds:             rec.Odds,
		Confidence:       rec.Confidence,
		BettingSites:     rec.BettingSites,
		ExpiresAt:        rec.ExpiresAt,
		MaxPurchases:     rec.MaxPurchases,
		CurrentPurchases: rec.CurrentPurchases,
		Urgent:           rec.Urgent,
		Category:         string(rec.Category),
		Content:          rec.Content,
		Status:           string(rec.Status),
		Result:           string(rec.Result),
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *RecommendationRepository) handleDatabaseError(operation string, err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Recommendation not found", map[string]any{
			"recommendation_id": id,
		})
		return errs.ErrRecommendationNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"recommendation_id": id,
		"error":             err.Error(),
		"lock_conflict":     r.errorClassifier.IsLockError(err),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a recommendation by id
func (r *RecommendationRepository) GetByID(ctx context.Context, id string) (*entity.Recommendation, error) {
	var m model.Recommendation
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting recommendation", result.Error, id)
	}

	return r.modelToEntity(&m), nil
}

// GetByIDForUpdate retrieves a recommendation holding an exclusive row lock,
// so capacity checks and counter increments serialize across settlements.
func (r *RecommendationRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Recommendation, error) {
	var m model.Recommendation
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking recommendation", result.Error, id)
	}

	return r.modelToEntity(&m), nil
}

// List returns all listings in insertion order
func (r *RecommendationRepository) List(ctx context.Context) ([]*entity.Recommendation, error) {
	var models []model.Recommendation
	result := r.db.WithContext(ctx).Order("position ASC").Find(&models)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing recommendations", result.Error, "")
	}

	recs := make([]*entity.Recommendation, 0, len(models))
	for i := range models {
		recs = append(recs, r.modelToEntity(&models[i]))
	}
	return recs, nil
}

// Create saves a new listing
func (r *RecommendationRepository) Create(ctx context.Context, rec *entity.Recommendation) error {
	result := r.db.WithContext(ctx).Create(r.entityToModel(rec))

	if result.Error != nil {
		return r.handleDatabaseError("creating recommendation", result.Error, rec.ID)
	}

	r.logger.Info("Recommendation created", map[string]any{
		"recommendation_id": rec.ID,
		"title":             rec.Title,
	})
	return nil
}

// Update persists listing mutations
func (r *RecommendationRepository) Update(ctx context.Context, rec *entity.Recommendation) error {
	result := r.db.WithContext(ctx).Model(&model.Recommendation{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"title":             rec.Title,
			"price_cents":       rec.PriceCents,
			"odds":              rec.Odds,
			"confidence":        rec.Confidence,
			"betting_sites":     rec.BettingSites,
			"expires_at":        rec.ExpiresAt,
			"max_purchases":     rec.MaxPurchases,
			"current_purchases": rec.CurrentPurchases,
			"urgent":            rec.Urgent,
			"category":          string(rec.Category),
			"content":           rec.Content,
			"status":            string(rec.Status),
			"result":            string(rec.Result),
			"updated_at":        rec.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating recommendation", result.Error, rec.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Recommendation not found during update", map[string]any{
			"recommendation_id": rec.ID,
		})
		return errs.ErrRecommendationNotFound
	}

	return nil
}

// Delete removes a listing. Purchase snapshots referencing it survive.
func (r *RecommendationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Recommendation{}, "id = ?", id)

	if result.Error != nil {
		return r.handleDatabaseError("deleting recommendation", result.Error, id)
	}

	if result.RowsAffected == 0 {
		return errs.ErrRecommendationNotFound
	}

	r.logger.Info("Recommendation deleted", map[string]any{
		"recommendation_id": id,
	})
	return nil
}

// Count returns the number of listings
func (r *RecommendationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Recommendation{}).Count(&count)

	if result.Error != nil {
		return 0, r.handleDatabaseError("counting recommendations", result.Error, "")
	}
	return count, nil
}
