package models

import (
	"time"
)

// CollectionItem is the membership of one card in one collection. The
// composite unique index closes the check-then-act race on concurrent
// adds of the same card.
type CollectionItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CollectionID uint      `gorm:"not null;uniqueIndex:idx_collection_card" json:"collection_id"`
	CardID       uint      `gorm:"not null;uniqueIndex:idx_collection_card" json:"card_id"`
	Card         Card      `gorm:"foreignKey:CardID" json:"card"`
	AddedAt      time.Time `json:"added_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CollectionItem model
func (CollectionItem) TableName() string {
	return "collection_items"
}
