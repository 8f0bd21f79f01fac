package models

import (
	"time"
)

// OrderItem is one card line on a customer order
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	CardID     uint      `gorm:"not null;index" json:"card_id"`
	Card       Card      `gorm:"foreignKey:CardID" json:"card"`
	Quantity   int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Subtotal   float64   `gorm:"not null" json:"subtotal"`
	CustomText *string   `json:"custom_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
