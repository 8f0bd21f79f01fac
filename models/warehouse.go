package models

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a physical storage location holding card stock
type Warehouse struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Location  *string        `json:"location"`
	Capacity  *int           `json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}
