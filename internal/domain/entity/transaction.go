package entity

import (
	"time"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// TransactionKind distinguishes ledger entries
type TransactionKind string

// Transaction kinds. The sign of a transaction is implied by its kind:
// deposits and refunds credit the wallet, purchases debit it.
const (
	KindDeposit  TransactionKind = "deposit"
	KindPurchase TransactionKind = "purchase"
	KindRefund   TransactionKind = "refund"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusTxPending   TransactionStatus = "pending"
	StatusTxCompleted TransactionStatus = "completed"
	StatusTxFailed    TransactionStatus = "failed"
)

// Transaction is an append-only wallet ledger entry. Entries are never
// mutated or deleted after creation.
type Transaction struct {
	ID          string            // Opaque unique identifier
	UserID      string            // Owning user
	Kind        TransactionKind   // deposit, purchase or refund
	AmountCents int64             // Positive magnitude in cents
	Description string            // Human-readable summary
	Status      TransactionStatus // completed, pending or failed
	CreatedAt   time.Time
}

// NewTransaction creates a completed ledger entry with basic validation
func NewTransaction(
	id, userID string,
	kind TransactionKind,
	amountCents int64,
	description string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == "" {
		return nil, errs.ErrUserNotFound
	}
	if !isValidKind(kind) {
		return nil, errs.ErrInternalServer
	}
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		ID:          id,
		UserID:      userID,
		Kind:        kind,
		AmountCents: amountCents,
		Description: description,
		Status:      StatusTxCompleted,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// FormattedAmount returns the magnitude with 2 decimal places
func (t *Transaction) FormattedAmount() string {
	return FormatCents(t.AmountCents)
}

// IsCredit returns true if this entry increases the wallet balance
func (t *Transaction) IsCredit() bool {
	return t.Kind == KindDeposit || t.Kind == KindRefund
}

// IsDebit returns true if this entry decreases the wallet balance
func (t *Transaction) IsDebit() bool {
	return t.Kind == KindPurchase
}

func isValidKind(kind TransactionKind) bool {
	return kind == KindDeposit || kind == KindPurchase || kind == KindRefund
}
