package models

import (
	"time"
)

// Transaction types for warehouse stock movements
const (
	TransactionTypeIn         = "IN"         // adds quantity to inventory
	TransactionTypeOut        = "OUT"        // removes quantity from inventory
	TransactionTypeAdjustment = "ADJUSTMENT" // sets inventory quantity to an absolute value
)

// WarehouseTransaction is an inventory-affecting event. Inserting one
// mutates the matching Inventory row in the same database transaction.
type WarehouseTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	WarehouseID     uint      `gorm:"not null;index" json:"warehouse_id"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	Quantity        int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	TransactionType string    `gorm:"not null" json:"transaction_type"` // IN, OUT, ADJUSTMENT
	ReferenceID     *uint     `json:"reference_id"`                     // originating document, e.g. a purchase order
	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WarehouseTransaction model
func (WarehouseTransaction) TableName() string {
	return "warehouse_transactions"
}

// ValidTransactionType reports whether t is one of the known transaction types
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjustment:
		return true
	}
	return false
}
