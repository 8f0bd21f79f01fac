package models

import (
	"time"

	"gorm.io/gorm"
)

// Account represents a customer or admin account in the system
type Account struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Auth0ID     string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name        string         `gorm:"not null" json:"name"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber *string        `json:"phone_number"`
	RoleID      *uint          `gorm:"index" json:"role_id"`
	Role        *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// IsAdmin reports whether the account carries the admin role
func (a *Account) IsAdmin() bool {
	return a.Role != nil && a.Role.RoleName == "admin"
}
