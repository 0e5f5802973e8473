package persistence

import (
	"context"
)

// UnitOfWork coordinates mutations across the wallet and catalog stores so a
// settlement commits as one indivisible update. An operation reports success
// only after Commit returns; there is no durability window between the
// in-memory effect and the durable write.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Recommendations returns a catalog repository bound to the current transaction
	Recommendations(ctx context.Context) RecommendationRepository

	// Purchases returns a purchase repository bound to the current transaction
	Purchases(ctx context.Context) PurchaseRepository

	// Transactions returns a ledger repository bound to the current transaction
	Transactions(ctx context.Context) TransactionRepository
}
