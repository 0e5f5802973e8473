package catalog

import (
	"fmt"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// RecommendationPatch enumerates every mutable field of a listing. Nil
// pointers are left untouched; set pointers are merged. Editing the price
// never changes existing purchase snapshots.
type RecommendationPatch struct {
	Title            *string
	Price            *string
	Odds             *string
	Confidence       *int
	BettingSites     *string
	ExpiresAt        *time.Time
	MaxPurchases     *int
	CurrentPurchases *int
	Urgent           *bool
	Category         *string
	Content          *string
	Status           *string
}

// apply merges the patch into the listing, validating each set field
func (p *RecommendationPatch) apply(rec *entity.Recommendation, timeProvider coreport.TimeProvider) error {
	if p.Title != nil {
		if *p.Title == "" {
			return fmt.Errorf("%w: title is required", errs.ErrInvalidListing)
		}
		rec.Title = *p.Title
	}
	if p.Price != nil {
		priceCents, err := entity.ParseAmount(*p.Price)
		if err != nil {
			return err
		}
		if priceCents <= 0 {
			return fmt.Errorf("%w: price must be positive", errs.ErrInvalidAmount)
		}
		rec.PriceCents = priceCents
	}
	if p.Odds != nil {
		odds, err := entity.ParseOdds(*p.Odds)
		if err != nil {
			return err
		}
		rec.Odds = odds.String()
	}
	if p.Confidence != nil {
		if *p.Confidence < 1 || *p.Confidence > 5 {
			return fmt.Errorf("%w: confidence must be between 1 and 5", errs.ErrInvalidListing)
		}
		rec.Confidence = *p.Confidence
	}
	if p.BettingSites != nil {
		rec.BettingSites = *p.BettingSites
	}
	if p.ExpiresAt != nil {
		rec.ExpiresAt = *p.ExpiresAt
	}
	if p.MaxPurchases != nil {
		if *p.MaxPurchases < 0 {
			return fmt.Errorf("%w: capacity cannot be negative", errs.ErrInvalidListing)
		}
		rec.MaxPurchases = *p.MaxPurchases
	}
	if p.CurrentPurchases != nil {
		// The counter is only reset when explicitly included in the patch
		if *p.CurrentPurchases < 0 {
			return fmt.Errorf("%w: purchase count cannot be negative", errs.ErrInvalidListing)
		}
		rec.CurrentPurchases = *p.CurrentPurchases
	}
	if p.Urgent != nil {
		rec.Urgent = *p.Urgent
	}
	if p.Category != nil {
		if !entity.IsValidCategory(*p.Category) {
			return fmt.Errorf("%w: unknown category %q", errs.ErrInvalidListing, *p.Category)
		}
		rec.Category = entity.Category(*p.Category)
	}
	if p.Content != nil {
		rec.Content = *p.Content
	}
	if p.Status != nil {
		switch entity.ListingStatus(*p.Status) {
		case entity.StatusActive, entity.StatusExpired, entity.StatusCompleted:
			rec.Status = entity.ListingStatus(*p.Status)
		default:
			return fmt.Errorf("%w: unknown status %q", errs.ErrInvalidListing, *p.Status)
		}
	}

	rec.UpdatedAt = timeProvider.Now()
	return nil
}
