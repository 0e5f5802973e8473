package persistence

import (
	"context"

	"github.com/sportxbet/tipstore/internal/domain/entity"
)

// TransactionRepository defines methods to interact with the append-only
// wallet ledger. Entries are never updated or deleted.
type TransactionRepository interface {
	// Create appends a new ledger entry
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns a user's ledger entries in chronological order
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
}
