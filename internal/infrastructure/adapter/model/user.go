package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	Username     string    `gorm:"not null;size:255"`
	PasswordHash string    `gorm:"size:255"`
	Balance      int64     `gorm:"not null"` // Balance in cents
	Admin        bool      `gorm:"not null;default:false"`
	TelegramID   int64     `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
