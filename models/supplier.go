package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a card stock supplier we raise purchase orders against
type Supplier struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	ContactPerson *string        `json:"contact_person"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone         *string        `json:"phone"`
	Address       *string        `json:"address"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
