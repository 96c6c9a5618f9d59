// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role defines a user's global privilege level.
type Role string

const (
	// RoleSuperAdmin may act on any content and perform hard deletes.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleUserAdmin may moderate content they authored.
	RoleUserAdmin Role = "USER_ADMIN"
	// RoleUser is the default role.
	RoleUser Role = "USER"
)

// User represents a registered member of the platform.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsSuperAdmin reports whether the user holds the top administrative role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsUserAdmin reports whether the user holds the content-admin role.
func (u *User) IsUserAdmin() bool {
	return u.Role == RoleUserAdmin
}
