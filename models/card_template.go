package models

import (
	"time"

	"gorm.io/gorm"
)

// CardTemplate represents a card design that individual cards are printed from
type CardTemplate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `json:"description"`
	DesignS3Key *string        `json:"design_s3_key"`                // nullable, S3 key for uploaded design art
	DesignURL   *string        `gorm:"-" json:"design_url,omitempty"` // computed field, presigned URL for design art
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CardTemplate model
func (CardTemplate) TableName() string {
	return "card_templates"
}
