package models

import "time"

// GroupStatus defines the moderation state of a group.
type GroupStatus string

const (
	// GroupStatusActive indicates a group is visible and joinable.
	GroupStatusActive GroupStatus = "active"
	// GroupStatusPending indicates a group is awaiting moderation.
	GroupStatusPending GroupStatus = "pending"
	// GroupStatusBanned indicates a group is disabled by moderation.
	GroupStatusBanned GroupStatus = "banned"
)

// Group represents a community that can scope post visibility.
type Group struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Name            string      `gorm:"size:120;not null" json:"name"`
	Slug            string      `gorm:"size:24;not null;uniqueIndex" json:"slug"`
	Description     string      `gorm:"type:text" json:"description"`
	CreatedByUserID *uint       `json:"created_by_user_id"`
	CreatedByUser   *User       `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	Status          GroupStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
