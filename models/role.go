package models

import (
	"time"
)

// Role represents an access role assignable to accounts
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoleName  string    `gorm:"uniqueIndex;not null" json:"role_name"` // "customer" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}
