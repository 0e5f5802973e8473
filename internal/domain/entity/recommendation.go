package entity

import (
	"fmt"
	"time"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// Category classifies a recommendation by sport
type Category string

// Categories
const (
	CategoryFootball   Category = "football"
	CategoryBasketball Category = "basketball"
	CategoryTennis     Category = "tennis"
	CategoryOther      Category = "other"
)

// ListingStatus is the lifecycle state of a recommendation
type ListingStatus string

// Listing statuses
const (
	StatusActive    ListingStatus = "active"
	StatusExpired   ListingStatus = "expired"
	StatusCompleted ListingStatus = "completed"
)

// Result is the tagged outcome of a completed recommendation
type Result string

// Results
const (
	ResultHit     Result = "hit"
	ResultMiss    Result = "miss"
	ResultPending Result = "pending"
)

// Recommendation is a purchasable betting tip listing
type Recommendation struct {
	ID               string        // Opaque unique identifier
	Title            string        // Short public title
	PriceCents       int64         // Price in cents, always positive
	Odds             string        // Decimal odds as a string, at least 1.0
	Confidence       int           // Tipster confidence, 1 to 5
	BettingSites     string        // Comma-separated venue list
	ExpiresAt        time.Time     // When the tip stops being purchasable
	MaxPurchases     int           // Purchase capacity, 0 means unlimited
	CurrentPurchases int           // Monotonic purchase counter
	Urgent           bool          // Urgency flag for presentation
	Category         Category      // Sport category
	Content          string        // Premium body, revealed only post-purchase
	Status           ListingStatus // Lifecycle status
	Result           Result        // Outcome, pending until marked
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewRecommendation creates an active listing with a zero purchase count
func NewRecommendation(
	id, title, price, odds string,
	confidence int,
	bettingSites string,
	expiresAt time.Time,
	maxPurchases int,
	urgent bool,
	category Category,
	content string,
	timeProvider coreport.TimeProvider,
) (*Recommendation, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrInvalidListing)
	}

	priceCents, err := ParseAmount(price)
	if err != nil {
		return nil, err
	}
	if priceCents <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", errs.ErrInvalidAmount)
	}

	parsedOdds, err := ParseOdds(odds)
	if err != nil {
		return nil, err
	}

	if confidence < 1 || confidence > 5 {
		return nil, fmt.Errorf("%w: confidence must be between 1 and 5", errs.ErrInvalidListing)
	}
	if !IsValidCategory(string(category)) {
		return nil, fmt.Errorf("%w: unknown category %q", errs.ErrInvalidListing, category)
	}
	if maxPurchases < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", errs.ErrInvalidListing)
	}

	now := timeProvider.Now()
	return &Recommendation{
		ID:           id,
		Title:        title,
		PriceCents:   priceCents,
		Odds:         parsedOdds.String(),
		Confidence:   confidence,
		BettingSites: bettingSites,
		ExpiresAt:    expiresAt,
		MaxPurchases: maxPurchases,
		Urgent:       urgent,
		Category:     category,
		Content:      content,
		Status:       StatusActive,
		Result:       ResultPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// FormattedPrice returns the price with 2 decimal places
func (r *Recommendation) FormattedPrice() string {
	return FormatCents(r.PriceCents)
}

// IsActive reports whether the listing is purchasable at the given time
func (r *Recommendation) IsActive(now time.Time) bool {
	if r.Status != StatusActive {
		return false
	}
	return r.ExpiresAt.IsZero() || r.ExpiresAt.After(now)
}

// IsSoldOut reports whether the purchase capacity has been reached
func (r *Recommendation) IsSoldOut() bool {
	return r.MaxPurchases > 0 && r.CurrentPurchases >= r.MaxPurchases
}

// RecordPurchase increments the purchase counter, enforcing capacity
func (r *Recommendation) RecordPurchase(timeProvider coreport.TimeProvider) error {
	if r.IsSoldOut() {
		return errs.NewSoldOutError(r.ID, r.MaxPurchases)
	}

	r.CurrentPurchases++
	r.UpdatedAt = timeProvider.Now()
	return nil
}

// Complete marks the listing as completed with the given outcome
func (r *Recommendation) Complete(outcome Result, timeProvider coreport.TimeProvider) error {
	if outcome != ResultHit && outcome != ResultMiss {
		return fmt.Errorf("%w: outcome must be hit or miss", errs.ErrInvalidListing)
	}

	r.Status = StatusCompleted
	r.Result = outcome
	r.UpdatedAt = timeProvider.Now()
	return nil
}

// TimeRemaining returns how long until expiry, zero if already expired.
// Pure read, never mutates the listing.
func (r *Recommendation) TimeRemaining(now time.Time) time.Duration {
	if r.ExpiresAt.IsZero() || !r.ExpiresAt.After(now) {
		return 0
	}
	return r.ExpiresAt.Sub(now)
}

// IsValidCategory validates a category string
func IsValidCategory(category string) bool {
	switch Category(category) {
	case CategoryFootball, CategoryBasketball, CategoryTennis, CategoryOther:
		return true
	default:
		return false
	}
}

// IsValidResult validates an outcome string for result tagging
func IsValidResult(result string) bool {
	return Result(result) == ResultHit || Result(result) == ResultMiss
}
