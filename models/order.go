package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Payment statuses
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Order represents a customer order for cards. A customer owns the
// cards on an order only once Status is COMPLETED and PaymentStatus is
// PAID at the same time.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AccountID       uint           `gorm:"not null;index" json:"account_id"`
	Account         Account        `gorm:"foreignKey:AccountID" json:"account"`
	OrderDate       time.Time      `json:"order_date"`
	Status          string         `gorm:"not null;default:'PENDING'" json:"status"`         // PENDING, PROCESSING, COMPLETED, CANCELLED
	PaymentStatus   string         `gorm:"not null;default:'PENDING'" json:"payment_status"` // PENDING, PAID, FAILED, REFUNDED
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	ShippingAddress *string        `json:"shipping_address"`
	PaymentMethod   *string        `json:"payment_method"`
	Notes           *string        `json:"notes"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ValidOrderStatus reports whether s is one of the known order statuses
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the known payment statuses
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
