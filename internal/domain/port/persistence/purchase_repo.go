package persistence

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// PurchaseRepository defines methods to interact with purchase records
type PurchaseRepository interface {
	// Create appends a new purchase record
	Create(ctx context.Context, purchase *entity.Purchase) error

	// ListByUser returns a user's purchases in insertion order
	ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error)

	// ExistsForUser reports whether the user already purchased the listing
	ExistsForUser(ctx context.Context, userID, recommendationID string) (bool, error)

	// UpdateResultByRecommendation tags every purchase of the listing with
	// the given outcome. Used only when result cascading is enabled.
	UpdateResultByRecommendation(ctx context.Context, recommendationID string, result entity.Result) error
}
