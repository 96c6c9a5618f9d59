package models

import "time"

// Review is a node in a post's threaded review tree.
// Invariant: a reply (ParentID != nil) always carries Rating 0; only root
// reviews hold a meaningful rating.
type Review struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Comment  string  `gorm:"type:text;not null" json:"comment"`
	Rating   int     `gorm:"not null;default:0" json:"rating"`
	PostID   uint    `gorm:"not null;index" json:"post_id"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	User     User    `gorm:"foreignKey:UserID" json:"user"`
	ParentID *uint   `gorm:"index" json:"parent_id,omitempty"`
	// Replies is derived from ParentID back-references; the repository
	// preloads a fixed number of levels.
	Replies   []*Review `gorm:"foreignKey:ParentID" json:"replies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
