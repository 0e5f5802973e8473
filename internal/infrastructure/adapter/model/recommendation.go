package model

import (
	"time"
)

// Recommendation represents the database model for catalog listings.
// Position is an auto-incrementing column used only to preserve insertion
// order in reads.
type Recommendation struct {
	ID               string    `gorm:"primaryKey;size:64"`
	Position         int64     `gorm:"autoIncrement;uniqueIndex"`
	Title            string    `gorm:"not null;size:255"`
	PriceCents       int64     `gorm:"not null"`
	Odds             string    `gorm:"not null;size:32"`
	Confidence       int       `gorm:"not null"`
	BettingSites     string    `gorm:"size:512"`
	ExpiresAt        time.Time `gorm:"index"`
	MaxPurchases     int       `gorm:"not null;default:0"`
	CurrentPurchases int       `gorm:"not null;default:0"`
	Urgent           bool      `gorm:"not null;default:false"`
	Category         string    `gorm:"not null;size:32"`
	Content          string    `gorm:"type:text"`
	Status           string    `gorm:"not null;size:32;index"`
	Result           string    `gorm:"not null;size:32"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for Recommendation
func (Recommendation) TableName() string {
	return "recommendations"
}
