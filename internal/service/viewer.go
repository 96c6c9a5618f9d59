package service

import (
	"context"

	"cineverse/internal/models"
	"cineverse/internal/repository"
)

// resolveViewer turns a requester ID into a visibility viewer. An anonymous
// requester (userID 0) gets the zero viewer.
func resolveViewer(ctx context.Context, users repository.UserRepository, groups repository.GroupRepository, userID uint) (repository.Viewer, error) {
	if userID == 0 {
		return repository.Viewer{}, nil
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return repository.Viewer{}, models.NewNotFoundError("User", userID)
	}
	groupIDs, err := groups.ActiveGroupIDs(ctx, userID)
	if err != nil {
		return repository.Viewer{}, err
	}
	return repository.Viewer{
		UserID:       userID,
		IsSuperAdmin: user.IsSuperAdmin(),
		GroupIDs:     groupIDs,
	}, nil
}

// visiblePost fetches the post and applies the viewer's visibility predicate,
// answering NotFound for posts outside it so existence is not leaked.
func visiblePost(ctx context.Context, posts repository.PostRepository, id uint, viewer repository.Viewer) (*models.Post, error) {
	post, err := posts.GetByID(ctx, id, viewer)
	if err != nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	if !visibleTo(viewer, post) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}
