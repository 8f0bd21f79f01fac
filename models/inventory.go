package models

import (
	"time"
)

// Inventory holds the current on-hand quantity of one product at one
// warehouse. Exactly one row may exist per (product, warehouse) pair;
// the composite unique index backs that up at the database level.
type Inventory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse" json:"product_id"`
	WarehouseID uint      `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse" json:"warehouse_id"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	LastChecked time.Time `json:"last_checked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Inventory model
func (Inventory) TableName() string {
	return "inventories"
}
