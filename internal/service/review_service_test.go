package service

import (
	"context"
	"testing"

	"cineverse/internal/models"
	"cineverse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postAlwaysExists() *stubPostRepo {
	return &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint, _ repository.Viewer) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostStatusPublished, Visibility: models.VisibilityPublic}, nil
		},
	}
}

func TestCreateReview_RepliesGetRatingZero(t *testing.T) {
	parentID := uint(10)
	var stored *models.Review
	reviews := &stubReviewRepo{
		createFn: func(_ context.Context, r *models.Review) error {
			r.ID = 20
			stored = r
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) {
			if id == parentID {
				return &models.Review{ID: parentID, PostID: 1}, nil
			}
			if stored != nil && stored.ID == id {
				return stored, nil
			}
			return nil, models.NewNotFoundError("Review", id)
		},
	}
	users := &stubUserRepo{users: map[uint]*models.User{2: {ID: 2}}}
	svc := NewReviewService(reviews, postAlwaysExists(), users, &stubGroupRepo{})

	created, err := svc.CreateReview(context.Background(), CreateReviewInput{
		UserID:   2,
		PostID:   1,
		Comment:  "agreed",
		Rating:   5,
		ParentID: &parentID,
	})
	require.NoError(t, err)
	assert.Zero(t, created.Rating, "replies never carry a rating")
	assert.NotNil(t, created.Replies)
	assert.Empty(t, created.Replies)
}

func TestCreateReview_RootKeepsRating(t *testing.T) {
	var stored *models.Review
	reviews := &stubReviewRepo{
		createFn: func(_ context.Context, r *models.Review) error {
			r.ID = 21
			stored = r
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) {
			return stored, nil
		},
	}
	users := &stubUserRepo{users: map[uint]*models.User{2: {ID: 2}}}
	svc := NewReviewService(reviews, postAlwaysExists(), users, &stubGroupRepo{})

	created, err := svc.CreateReview(context.Background(), CreateReviewInput{
		UserID:  2,
		PostID:  1,
		Comment: "masterpiece",
		Rating:  9,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.Rating)
}

func TestCreateReview_Validation(t *testing.T) {
	users := &stubUserRepo{users: map[uint]*models.User{2: {ID: 2}}}
	svc := NewReviewService(&stubReviewRepo{}, postAlwaysExists(), users, &stubGroupRepo{})
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, CreateReviewInput{PostID: 1, Comment: "x"})
		assert.True(t, models.IsCode(err, models.CodeNotAuthenticated))
	})

	t.Run("empty comment", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, CreateReviewInput{UserID: 2, PostID: 1, Comment: "  "})
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, CreateReviewInput{UserID: 2, PostID: 1, Comment: "x", Rating: 11})
		assert.True(t, models.IsCode(err, models.CodeInvalidArgument))
	})

	t.Run("parent from another post", func(t *testing.T) {
		otherParent := uint(30)
		reviews := &stubReviewRepo{
			getByIDFn: func(_ context.Context, id uint) (*models.Review, error) {
				return &models.Review{ID: id, PostID: 999}, nil
			},
		}
		svc := NewReviewService(reviews, postAlwaysExists(), users, &stubGroupRepo{})
		_, err := svc.CreateReview(ctx, CreateReviewInput{
			UserID: 2, PostID: 1, Comment: "x", ParentID: &otherParent,
		})
		assert.True(t, models.IsCode(err, models.CodeInvalidArgument))
	})
}

func TestListReviews_HiddenPostIsNotFound(t *testing.T) {
	groupID := uint(9)
	listed := false
	reviews := &stubReviewRepo{
		listRootsFn: func(_ context.Context, _ uint) ([]*models.Review, error) {
			listed = true
			return []*models.Review{{ID: 1, PostID: 7}}, nil
		},
	}
	posts := &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint, _ repository.Viewer) (*models.Post, error) {
			return &models.Post{
				ID:         id,
				AuthorID:   2,
				Status:     models.PostStatusPublished,
				Visibility: models.VisibilityGroupOnly,
				GroupID:    &groupID,
			}, nil
		},
	}
	users := &stubUserRepo{users: map[uint]*models.User{2: {ID: 2}, 3: {ID: 3}}}
	groups := &stubGroupRepo{memberOf: map[uint][]uint{}}
	svc := NewReviewService(reviews, posts, users, groups)
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		listed = false
		_, err := svc.ListReviews(ctx, 7, 0)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
		assert.False(t, listed)
	})

	t.Run("non-member", func(t *testing.T) {
		listed = false
		_, err := svc.ListReviews(ctx, 7, 3)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
		assert.False(t, listed)
	})

	t.Run("author", func(t *testing.T) {
		listed = false
		out, err := svc.ListReviews(ctx, 7, 2)
		require.NoError(t, err)
		assert.Len(t, out, 1)
		assert.True(t, listed)
	})

	t.Run("group member", func(t *testing.T) {
		groups.memberOf[3] = []uint{9}
		defer delete(groups.memberOf, 3)
		_, err := svc.ListReviews(ctx, 7, 3)
		require.NoError(t, err)
	})
}

func TestDeleteReview_AuthorOrSuperAdminOnly(t *testing.T) {
	review := &models.Review{ID: 5, UserID: 2, PostID: 1}
	var deleted bool
	reviews := &stubReviewRepo{
		getByIDFn: func(_ context.Context, _ uint) (*models.Review, error) {
			return review, nil
		},
		deleteSubtreeFn: func(_ context.Context, _ uint) (int64, error) {
			deleted = true
			return 3, nil
		},
	}
	users := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Role: models.RoleSuperAdmin},
		2: {ID: 2, Role: models.RoleUser},
		3: {ID: 3, Role: models.RoleUserAdmin},
	}}
	svc := NewReviewService(reviews, postAlwaysExists(), users, &stubGroupRepo{})
	ctx := context.Background()

	t.Run("stranger rejected even as user admin", func(t *testing.T) {
		deleted = false
		err := svc.DeleteReview(ctx, 3, 5)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotAuthorized))
		assert.False(t, deleted)
	})

	t.Run("author allowed", func(t *testing.T) {
		deleted = false
		require.NoError(t, svc.DeleteReview(ctx, 2, 5))
		assert.True(t, deleted)
	})

	t.Run("super admin allowed", func(t *testing.T) {
		deleted = false
		require.NoError(t, svc.DeleteReview(ctx, 1, 5))
		assert.True(t, deleted)
	})
}
