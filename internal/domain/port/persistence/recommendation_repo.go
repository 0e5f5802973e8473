package persistence

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// RecommendationRepository defines methods to interact with catalog listings
type RecommendationRepository interface {
	// GetByID retrieves a recommendation by id
	//
	// Possible errors:
	// - ErrRecommendationNotFound: If no listing has the given id
	GetByID(ctx context.Context, id string) (*entity.Recommendation, error)

	// GetByIDForUpdate retrieves a recommendation by id with a row lock,
	// so the capacity check and counter increment of a settlement cannot
	// race another purchase. Only meaningful inside a unit-of-work
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Recommendation, error)

	// List returns all listings in insertion order
	List(ctx context.Context) ([]*entity.Recommendation, error)

	// Create saves a new listing
	Create(ctx context.Context, rec *entity.Recommendation) error

	// Update persists listing mutations
	//
	// Possible errors:
	// - ErrRecommendationNotFound: If the listing doesn't exist
	Update(ctx context.Context, rec *entity.Recommendation) error

	// Delete removes a listing. Purchase snapshots referencing it are kept.
	//
	// Possible errors:
	// - ErrRecommendationNotFound: If the listing doesn't exist
	Delete(ctx context.Context, id string) error

	// Count returns the number of listings, used to decide whether to seed samples
	Count(ctx context.Context) (int64, error)
}
