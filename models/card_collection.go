package models

import (
	"time"

	"gorm.io/gorm"
)

// CardCollection is a customer-curated named set of owned cards,
// optionally visible to everyone
type CardCollection struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	AccountID   uint             `gorm:"not null;index" json:"account_id"`
	Name        string           `gorm:"not null" json:"name"`
	Description *string          `json:"description"`
	IsPublic    bool             `gorm:"not null;default:false" json:"is_public"`
	Items       []CollectionItem `gorm:"foreignKey:CollectionID" json:"items,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CardCollection model
func (CardCollection) TableName() string {
	return "card_collections"
}
