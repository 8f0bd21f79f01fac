package models

import (
	"time"
)

// PurchaseOrderLine is one product line on a purchase order, tracking
// ordered vs. received quantities. TotalPrice is computed at creation
// as UnitPrice * QuantityOrdered.
type PurchaseOrderLine struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	PurchaseOrderID         uint       `gorm:"not null;index" json:"purchase_order_id"`
	ProductID               uint       `gorm:"not null;index" json:"product_id"`
	QuantityOrdered         int        `gorm:"not null;check:quantity_ordered > 0" json:"quantity_ordered"`
	QuantityReceived        int        `gorm:"not null;default:0" json:"quantity_received"`
	QuantityPendingReceived int        `gorm:"not null;default:0" json:"quantity_pending_received"`
	UnitPrice               float64    `gorm:"not null" json:"unit_price"`
	TotalPrice              float64    `gorm:"not null" json:"total_price"`
	ExpectedDate            *time.Time `json:"expected_date"`
	Note                    *string    `json:"note"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the PurchaseOrderLine model
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// FullyReceived reports whether the ordered quantity has been received in full
func (l *PurchaseOrderLine) FullyReceived() bool {
	return l.QuantityReceived >= l.QuantityOrdered
}
