package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase order statuses
const (
	PurchaseOrderStatusDraft     = "DRAFT"
	PurchaseOrderStatusSubmitted = "SUBMITTED"
	PurchaseOrderStatusApproved  = "APPROVED"
	PurchaseOrderStatusCanceled  = "CANCELED"
	PurchaseOrderStatusReceived  = "RECEIVED"
	PurchaseOrderStatusClosed    = "CLOSED"
)

// PurchaseOrder represents a restocking order placed with a supplier,
// delivered to a specific warehouse
type PurchaseOrder struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	SupplierID       uint                `gorm:"not null;index" json:"supplier_id"`
	Supplier         Supplier            `gorm:"foreignKey:SupplierID" json:"supplier"`
	WarehouseID      uint                `gorm:"not null;index" json:"warehouse_id"`
	PONumber         string              `gorm:"uniqueIndex;not null" json:"po_number"`
	Status           string              `gorm:"not null;default:'DRAFT'" json:"status"` // DRAFT, SUBMITTED, APPROVED, CANCELED, RECEIVED, CLOSED
	OrderDate        time.Time           `json:"order_date"`
	ExpectedDelivery *time.Time          `json:"expected_delivery"`
	Lines            []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID" json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName specifies the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ValidPurchaseOrderStatus reports whether s is one of the known PO statuses
func ValidPurchaseOrderStatus(s string) bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved,
		PurchaseOrderStatusCanceled, PurchaseOrderStatusReceived, PurchaseOrderStatusClosed:
		return true
	}
	return false
}
