package repository

import (
	"context"
	"errors"

	"cineverse/internal/cache"
	"cineverse/internal/models"

	"gorm.io/gorm"
)

// ReactionState is the caller's engagement with a post after a toggle.
type ReactionState struct {
	Liked     bool `json:"liked"`
	Disliked  bool `json:"disliked"`
	Favorited bool `json:"favorited"`
}

// ReactionRepository defines the interface for like/dislike/favorite toggles.
type ReactionRepository interface {
	ToggleReaction(ctx context.Context, userID, postID uint, kind models.ReactionKind) (ReactionState, error)
	ToggleFavorite(ctx context.Context, userID, postID uint) (bool, error)
	IsFavorited(ctx context.Context, userID, postID uint) (bool, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// ToggleReaction flips the user's reaction inside a single transaction over
// the one (user, post) row. Same kind toggles off, the opposite kind flips,
// absence creates. The unique index keeps like and dislike mutually
// exclusive even under concurrent toggles.
func (r *reactionRepository) ToggleReaction(ctx context.Context, userID, postID uint, kind models.ReactionKind) (ReactionState, error) {
	var state ReactionState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if createErr := tx.Create(&models.Reaction{
				UserID: userID,
				PostID: postID,
				Kind:   kind,
			}).Error; createErr != nil {
				return createErr
			}
			state.Liked = kind == models.ReactionLike
			state.Disliked = kind == models.ReactionDislike
			return nil
		case err != nil:
			return err
		case existing.Kind == kind:
			// Toggle off.
			return tx.Delete(&models.Reaction{}, existing.ID).Error
		default:
			if updateErr := tx.Model(&models.Reaction{}).
				Where("id = ?", existing.ID).
				Update("kind", kind).Error; updateErr != nil {
				return updateErr
			}
			state.Liked = kind == models.ReactionLike
			state.Disliked = kind == models.ReactionDislike
			return nil
		}
	})
	if err != nil {
		return ReactionState{}, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return state, nil
}

// ToggleFavorite creates the join row when absent and deletes it when
// present. The returned bool is the post-toggle favorited state.
func (r *reactionRepository) ToggleFavorite(ctx context.Context, userID, postID uint) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FavoritePost
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			return tx.Create(&models.FavoritePost{UserID: userID, PostID: postID}).Error
		case err != nil:
			return err
		default:
			favorited = false
			return tx.Delete(&models.FavoritePost{}, existing.ID).Error
		}
	})
	if err != nil {
		return false, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	cache.InvalidateFavorites(ctx, userID)
	return favorited, nil
}

func (r *reactionRepository) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoritePost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
