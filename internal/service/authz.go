// Package service implements the business rules on top of the repositories.
package service

import "cineverse/internal/models"

// Action is a capability a user may or may not hold over a post.
type Action string

const (
	// ActionEditPost covers editing an existing post's content.
	ActionEditPost Action = "edit_post"
	// ActionUpdateStatus covers moderation status transitions.
	ActionUpdateStatus Action = "update_status"
	// ActionDeletePost covers both soft and hard deletion.
	ActionDeletePost Action = "delete_post"
)

// Can evaluates the authorization matrix in one place so individual
// operations do not re-derive role checks. SUPER_ADMIN may act on any post,
// USER_ADMIN only on posts they authored; for plain edits the author
// themselves also qualifies. Everyone else is rejected.
func Can(actor *models.User, action Action, post *models.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	if actor.IsSuperAdmin() {
		return true
	}

	switch action {
	case ActionEditPost:
		return post.AuthorID == actor.ID
	case ActionUpdateStatus, ActionDeletePost:
		return actor.IsUserAdmin() && post.AuthorID == actor.ID
	default:
		return false
	}
}
