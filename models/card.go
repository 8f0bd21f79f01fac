package models

import (
	"time"

	"gorm.io/gorm"
)

// Card represents a single NFC-enabled physical card, tied to a product SKU
// and a design template
type Card struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	NFCUUID        string         `gorm:"uniqueIndex;not null" json:"nfc_uuid"`
	CardTemplateID uint           `gorm:"not null;index" json:"card_template_id"`
	CardTemplate   CardTemplate   `gorm:"foreignKey:CardTemplateID" json:"card_template"`
	ProductID      uint           `gorm:"not null;index" json:"product_id"`
	Product        Product        `gorm:"foreignKey:ProductID" json:"product"`
	CustomText     *string        `json:"custom_text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Card model
func (Card) TableName() string {
	return "cards"
}
