package repository

import (
	"context"
	"fmt"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the ledger repository port using GORM.
// The ledger is append-only; this adapter exposes no update or delete.
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) wrapError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create appends a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := model.Transaction{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Kind:        string(transaction.Kind),
		AmountCents: transaction.AmountCents,
		Description: transaction.Description,
		Status:      string(transaction.Status),
		CreatedAt:   transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.wrapError("creating transaction", result.Error)
	}
	return nil
}

// ListByUser returns a user's ledger entries in chronological order
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models)

	if result.Error != nil {
		return nil, r.wrapError("listing transactions", result.Error)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		m := &models[i]
		transactions = append(transactions, &entity.Transaction{
			ID:          m.ID,
			UserID:      m.UserID,
			Kind:        entity.TransactionKind(m.Kind),
			AmountCents: m.AmountCents,
			Description: m.Description,
			Status:      entity.TransactionStatus(m.Status),
			CreatedAt:   m.CreatedAt,
		})
	}
	return transactions, nil
}
