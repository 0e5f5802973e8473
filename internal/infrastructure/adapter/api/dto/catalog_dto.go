package dto

import (
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// CreateRecommendationRequest represents the admin request for a new listing
type CreateRecommendationRequest struct {
	Title        string    `json:"title" binding:"required"`
	Price        string    `json:"price" binding:"required"`
	Odds         string    `json:"odds" binding:"required"`
	Confidence   int       `json:"confidence" binding:"required,min=1,max=5"`
	BettingSites string    `json:"bettingSites"`
	ExpiresAt    time.Time `json:"expiresAt"`
	MaxPurchases int       `json:"maxPurchases" binding:"min=0"`
	Urgent       bool      `json:"urgent"`
	Category     string    `json:"category" binding:"required,oneof=football basketball tennis other"`
	Content      string    `json:"content"`
}

// UpdateRecommendationRequest is a partial update: absent fields stay as
// they are, present fields are validated and merged
type UpdateRecommendationRequest struct {
	Title            *string    `json:"title"`
	Price            *string    `json:"price"`
	Odds             *string    `json:"odds"`
	Confidence       *int       `json:"confidence"`
	BettingSites     *string    `json:"bettingSites"`
	ExpiresAt        *time.Time `json:"expiresAt"`
	MaxPurchases     *int       `json:"maxPurchases"`
	CurrentPurchases *int       `json:"currentPurchases"`
	Urgent           *bool      `json:"urgent"`
	Category         *string    `json:"category"`
	Content          *string    `json:"content"`
	Status           *string    `json:"status"`
}

// MarkResultRequest tags a completed listing's outcome
type MarkResultRequest struct {
	Result string `json:"result" binding:"required,oneof=hit miss"`
}

// RecommendationResponse is the public representation of a listing. Content
// is only present on the admin view; buyers read it from their purchases.
type RecommendationResponse struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Price                string    `json:"price"`
	Odds                 string    `json:"odds"`
	Confidence           int       `json:"confidence"`
	BettingSites         string    `json:"bettingSites,omitempty"`
	ExpiresAt            time.Time `json:"expiresAt"`
	TimeRemainingSeconds int64     `json:"timeRemainingSeconds"`
	MaxPurchases         int       `json:"maxPurchases"`
	CurrentPurchases     int       `json:"currentPurchases"`
	SoldOut              bool      `json:"soldOut"`
	Urgent               bool      `json:"urgent"`
	Category             string    `json:"category"`
	Content              string    `json:"content,omitempty"`
	Status               string    `json:"status"`
	Result               string    `json:"result"`
	CreatedAt            time.Time `json:"createdAt"`
}

// NewRecommendationResponse maps a listing onto its public API shape
func NewRecommendationResponse(rec *entity.Recommendation, now time.Time) RecommendationResponse {
	return RecommendationResponse{
		ID:                   rec.ID,
		Title:                rec.Title,
		Price:                rec.FormattedPrice(),
		Odds:                 rec.Odds,
		Confidence:           rec.Confidence,
		BettingSites:         rec.BettingSites,
		ExpiresAt:            rec.ExpiresAt,
		TimeRemainingSeconds: int64(rec.TimeRemaining(now).Seconds()),
		MaxPurchases:         rec.MaxPurchases,
		CurrentPurchases:     rec.CurrentPurchases,
		SoldOut:              rec.IsSoldOut(),
		Urgent:               rec.Urgent,
		Category:             string(rec.Category),
		Status:               string(rec.Status),
		Result:               string(rec.Result),
		CreatedAt:            rec.CreatedAt,
	}
}

// NewAdminRecommendationResponse is the admin view, premium body included
func NewAdminRecommendationResponse(rec *entity.Recommendation, now time.Time) RecommendationResponse {
	resp := NewRecommendationResponse(rec, now)
	resp.Content = rec.Content
	return resp
}
