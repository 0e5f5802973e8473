package repository

import (
	"context"
	"fmt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PurchaseRepository implements the purchase repository port using GORM
type PurchaseRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPurchaseRepository creates a new PurchaseRepository instance
func NewPurchaseRepository(db *gorm.DB, logger coreport.Logger) *PurchaseRepository {
	return &PurchaseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PurchaseRepository) modelToEntity(m *model.Purchase) *entity.Purchase {
	return &entity.Purchase{
		ID:               m.ID,
		UserID:           m.UserID,
		RecommendationID: m.RecommendationID,
		Title:            m.Title,
		PriceCents:       m.PriceCents,
		Odds:             m.Odds,
		Content:          m.Content,
		Result:           entity.Result(m.Result),
		PurchasedAt:      m.PurchasedAt,
	}
}

func (r *PurchaseRepository) wrapError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create appends a new purchase record
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	m := model.Purchase{
		ID:               purchase.ID,
		UserID:           purchase.UserID,
		RecommendationID: purchase.RecommendationID,
		Title:            purchase.Title,
		PriceCents:       purchase.PriceCents,
		Odds:             purchase.Odds,
		Content:          purchase.Content,
		Result:           string(purchase.Result),
		PurchasedAt:      purchase.PurchasedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.wrapError("creating purchase", result.Error)
	}
	return nil
}

// ListByUser returns a user's purchases in insertion order
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	var models []model.Purchase
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&models)

	if result.Error != nil {
		return nil, r.wrapError("listing purchases", result.Error)
	}

	purchases := make([]*entity.Purchase, 0, len(models))
	for i := range models {
		purchases = append(purchases, r.modelToEntity(&models[i]))
	}
	return purchases, nil
}

// ExistsForUser reports whether the user already purchased the listing
func (r *PurchaseRepository) ExistsForUser(ctx context.Context, userID, recommendationID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("user_id = ? AND recommendation_id = ?", userID, recommendationID).
		Count(&count)

	if result.Error != nil {
		return false, r.wrapError("checking purchase existence", result.Error)
	}
	return count > 0, nil
}

// UpdateResultByRecommendation tags every purchase of the listing with the
// given outcome. Runs as a single UPDATE so partially tagged sets cannot
// appear even outside a unit of work.
func (r *PurchaseRepository) UpdateResultByRecommendation(ctx context.Context, recommendationID string, outcome entity.Result) error {
	result := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("recommendation_id = ?", recommendationID).
		Update("result", string(outcome))

	if result.Error != nil {
		return r.wrapError("cascading result to purchases", result.Error)
	}

	r.logger.Info("Purchase results tagged", map[string]any{
		"recommendation_id": recommendationID,
		"result":            string(outcome),
		"rows":              result.RowsAffected,
	})
	return nil
}
