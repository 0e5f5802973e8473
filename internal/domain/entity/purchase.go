package entity

import (
	"time"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// Purchase records a paid unlock of a recommendation. Title, price, odds and
// content are denormalized snapshots taken at purchase time so that later
// catalog edits never change what the buyer paid for. Immutable except Result.
type Purchase struct {
	ID               string // Opaque unique identifier
	UserID           string // Owning user
	RecommendationID string // Referenced listing, may no longer exist
	Title            string // Snapshot
	PriceCents       int64  // Snapshot
	Odds             string // Snapshot
	Content          string // Snapshot of the revealed premium body
	Result           Result // Outcome, pending until cascaded from the catalog
	PurchasedAt      time.Time
}

// NewPurchase snapshots the given recommendation for the buying user
func NewPurchase(id, userID string, rec *Recommendation, timeProvider coreport.TimeProvider) *Purchase {
	content := rec.Content
	if content == "" {
		content = "Premium tip content will be revealed here."
	}

	return &Purchase{
		ID:               id,
		UserID:           userID,
		RecommendationID: rec.ID,
		Title:            rec.Title,
		PriceCents:       rec.PriceCents,
		Odds:             rec.Odds,
		Content:          content,
		Result:           ResultPending,
		PurchasedAt:      timeProvider.Now(),
	}
}

// FormattedPrice returns the snapshot price with 2 decimal places
func (p *Purchase) FormattedPrice() string {
	return FormatCents(p.PriceCents)
}
