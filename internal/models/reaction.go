package models

import "time"

// ReactionKind is either a like or a dislike.
type ReactionKind string

const (
	// ReactionLike marks approval.
	ReactionLike ReactionKind = "like"
	// ReactionDislike marks disapproval.
	ReactionDislike ReactionKind = "dislike"
)

// Reaction records a user's like or dislike of a post. The unique index on
// (user_id, post_id) makes like/dislike structurally mutually exclusive.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"post_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// FavoritePost is the (user, post) favorites join row; toggling favorites
// creates or deletes it.
type FavoritePost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
