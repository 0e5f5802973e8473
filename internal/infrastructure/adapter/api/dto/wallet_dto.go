package dto

import (
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// DepositRequest represents the API request for a wallet deposit.
// Amounts travel as strings so the client never does float arithmetic.
type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WalletResponse represents the caller's wallet state
type WalletResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

// TransactionResponse represents one ledger entry
type TransactionResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PurchaseResponse represents one owned purchase, rendered from its
// snapshot so it survives catalog edits and deletions
type PurchaseResponse struct {
	ID               string    `json:"id"`
	RecommendationID string    `json:"recommendationId"`
	Title            string    `json:"title"`
	Price            string    `json:"price"`
	Odds             string    `json:"odds"`
	Content          string    `json:"content"`
	Result           string    `json:"result"`
	PurchasedAt      time.Time `json:"purchasedAt"`
}

// PurchaseReceiptResponse is returned by a successful purchase settlement
type PurchaseReceiptResponse struct {
	Purchase      PurchaseResponse    `json:"purchase"`
	Transaction   TransactionResponse `json:"transaction"`
	ResultBalance string              `json:"resultBalance"`
}

// NewTransactionResponse maps a ledger entry onto its API shape
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Amount:      t.FormattedAmount(),
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

// NewPurchaseResponse maps a purchase snapshot onto its API shape
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:               p.ID,
		RecommendationID: p.RecommendationID,
		Title:            p.Title,
		Price:            p.FormattedPrice(),
		Odds:             p.Odds,
		Content:          p.Content,
		Result:           string(p.Result),
		PurchasedAt:      p.PurchasedAt,
	}
}
