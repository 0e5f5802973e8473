package model

import (
	"time"
)

// Transaction represents the database model for wallet ledger entries
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:64"`
	UserID      string    `gorm:"not null;index;size:64"`
	Kind        string    `gorm:"not null;size:32"`
	AmountCents int64     `gorm:"not null"`
	Description string    `gorm:"size:512"`
	Status      string    `gorm:"not null;size:32"`
	CreatedAt   time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
