package model

import (
	"time"
)

// Purchase represents the database model for purchase records. There is no
// foreign key to recommendations: purchases outlive deleted listings by way
// of their denormalized snapshot columns.
type Purchase struct {
	ID               string    `gorm:"primaryKey;size:64"`
	Position         int64     `gorm:"autoIncrement;uniqueIndex"`
	UserID           string    `gorm:"not null;index;size:64"`
	RecommendationID string    `gorm:"not null;index;size:64"`
	Title            string    `gorm:"not null;size:255"`
	PriceCents       int64     `gorm:"not null"`
	Odds             string    `gorm:"not null;size:32"`
	Content          string    `gorm:"type:text"`
	Result           string    `gorm:"not null;size:32"`
	PurchasedAt      time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Purchase
func (Purchase) TableName() string {
	return "purchases"
}
