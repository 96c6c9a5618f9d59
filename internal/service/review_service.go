package service

import (
	"context"
	"strings"

	"cineverse/internal/middleware"
	"cineverse/internal/models"
	"cineverse/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	groupRepo  repository.GroupRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
	}
}

type CreateReviewInput struct {
	UserID  uint
	PostID  uint
	Comment string
	// Rating shares the post catalog's 0 to 10 scale; 0 means unrated.
	Rating   int
	ParentID *uint
}

// CreateReview attaches a root review or a reply. Replies never carry an
// independent rating: whatever the caller sent is stored as 0.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.UserID == 0 {
		return nil, models.NewNotAuthenticatedError("You must be signed in to review")
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if in.Comment == "" {
		return nil, models.NewValidationError("Comment is required")
	}
	if in.Rating < 0 || in.Rating > 10 {
		return nil, models.NewInvalidArgumentError("Rating must be between 0 and 10")
	}

	viewer, err := resolveViewer(ctx, s.userRepo, s.groupRepo, in.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := visiblePost(ctx, s.postRepo, in.PostID, viewer); err != nil {
		return nil, err
	}

	rating := in.Rating
	if in.ParentID != nil {
		parent, err := s.reviewRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, models.NewNotFoundError("Review", *in.ParentID)
		}
		if parent.PostID != in.PostID {
			return nil, models.NewInvalidArgumentError("Parent review belongs to a different post")
		}
		rating = 0
	}

	review := &models.Review{
		Comment:  in.Comment,
		Rating:   rating,
		PostID:   in.PostID,
		UserID:   in.UserID,
		ParentID: in.ParentID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	created.Replies = []*models.Review{}
	return created, nil
}

// ListReviews returns a post's root reviews newest-first with three levels
// of replies. Posts outside the requester's visibility answer NotFound, the
// same as GetPost.
func (s *ReviewService) ListReviews(ctx context.Context, postID, userID uint) ([]*models.Review, error) {
	viewer, err := resolveViewer(ctx, s.userRepo, s.groupRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, err := visiblePost(ctx, s.postRepo, postID, viewer); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListRoots(ctx, postID)
}

// DeleteReview removes the review and its whole reply subtree. Only the
// author or a SUPER_ADMIN may delete.
func (s *ReviewService) DeleteReview(ctx context.Context, actorID, reviewID uint) error {
	if actorID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to delete a review")
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return models.NewNotFoundError("Review", reviewID)
	}
	if review.UserID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return models.NewNotFoundError("User", actorID)
		}
		if !actor.IsSuperAdmin() {
			return models.NewNotAuthorizedError("You can only delete your own reviews")
		}
	}

	deleted, err := s.reviewRepo.DeleteSubtree(ctx, reviewID)
	if err != nil {
		return err
	}
	middleware.ReviewsDeleted.Add(float64(deleted))
	return nil
}
