package service

import (
	"context"

	"cineverse/internal/models"
	"cineverse/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	groupRepo    repository.GroupRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
	}
}

// visibleToViewer gates reactions on the same predicate reads use, so a post
// the caller cannot see also cannot be reacted to.
func (s *ReactionService) visibleToViewer(ctx context.Context, userID, postID uint) error {
	viewer, err := resolveViewer(ctx, s.userRepo, s.groupRepo, userID)
	if err != nil {
		return err
	}
	_, err = visiblePost(ctx, s.postRepo, postID, viewer)
	return err
}

// ToggleLike flips the caller's like (like=true) or dislike (like=false).
// Repeating the same call toggles the reaction off; the opposite call flips
// it. The returned state is authoritative for the caller's UI.
func (s *ReactionService) ToggleLike(ctx context.Context, userID, postID uint, like bool) (repository.ReactionState, error) {
	if userID == 0 {
		return repository.ReactionState{}, models.NewNotAuthenticatedError("You must be signed in to react")
	}
	if err := s.visibleToViewer(ctx, userID, postID); err != nil {
		return repository.ReactionState{}, err
	}

	kind := models.ReactionLike
	if !like {
		kind = models.ReactionDislike
	}
	state, err := s.reactionRepo.ToggleReaction(ctx, userID, postID, kind)
	if err != nil {
		return repository.ReactionState{}, err
	}

	favorited, err := s.reactionRepo.IsFavorited(ctx, userID, postID)
	if err != nil {
		return repository.ReactionState{}, err
	}
	state.Favorited = favorited
	return state, nil
}

// ToggleFavorite flips the caller's favorite flag on a post.
func (s *ReactionService) ToggleFavorite(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, models.NewNotAuthenticatedError("You must be signed in to favorite")
	}
	if err := s.visibleToViewer(ctx, userID, postID); err != nil {
		return false, err
	}
	return s.reactionRepo.ToggleFavorite(ctx, userID, postID)
}
