package migration

import (
	"context"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// seedListing describes one sample catalog entry
type seedListing struct {
	title        string
	price        string
	odds         string
	confidence   int
	bettingSites string
	expiresIn    time.Duration
	maxPurchases int
	urgent       bool
	category     entity.Category
	content      string
}

var seedListings = []seedListing{
	{
		title:        "Premier League: Home win with both teams scoring",
		price:        "15.99",
		odds:         "2.10",
		confidence:   4,
		bettingSites: "bet365, Unibet",
		expiresIn:    48 * time.Hour,
		maxPurchases: 50,
		urgent:       false,
		category:     entity.CategoryFootball,
		content:      "Hosts have scored in 9 straight home fixtures while conceding in 6. Back the home win with BTTS for value above 2.0.",
	},
	{
		title:        "NBA: Over 224.5 total points",
		price:        "9.99",
		odds:         "1.90",
		confidence:   3,
		bettingSites: "DraftKings",
		expiresIn:    12 * time.Hour,
		maxPurchases: 0,
		urgent:       true,
		category:     entity.CategoryBasketball,
		content:      "Both teams rank top five in pace over the last ten games and neither rotation has a healthy rim protector.",
	},
	{
		title:        "ATP quarter-final: Underdog to take a set",
		price:        "12.50",
		odds:         "1.72",
		confidence:   4,
		bettingSites: "Pinnacle, bet365",
		expiresIn:    24 * time.Hour,
		maxPurchases: 30,
		urgent:       false,
		category:     entity.CategoryTennis,
		content:      "The favourite has dropped a set in four of five meetings on this surface and is coming off a three-hour match.",
	},
}

// SeedRecommendations populates the catalog with sample listings when it is
// empty. Re-running against a seeded database is a no-op.
func SeedRecommendations(
	ctx context.Context,
	recommendations persistence.RecommendationRepository,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) error {
	count, err := recommendations.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Catalog already populated, skipping seed", map[string]any{
			"listings": count,
		})
		return nil
	}

	now := timeProvider.Now()
	for _, s := range seedListings {
		rec, err := entity.NewRecommendation(
			idGenerator.NewID(),
			s.title,
			s.price,
			s.odds,
			s.confidence,
			s.bettingSites,
			now.Add(s.expiresIn),
			s.maxPurchases,
			s.urgent,
			s.category,
			s.content,
			timeProvider,
		)
		if err != nil {
			return err
		}

		if err := recommendations.Create(ctx, rec); err != nil {
			return err
		}
	}

	logger.Info("Seeded sample recommendations", map[string]any{
		"count": len(seedListings),
	})
	return nil
}
