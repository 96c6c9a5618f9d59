package repository

import (
	"context"

	"cineverse/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review tree operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListRoots(ctx context.Context, postID uint) ([]*models.Review, error)
	DeleteSubtree(ctx context.Context, id uint) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListRoots returns a post's root reviews newest-first with replies preloaded
// three levels deep. Deeper nesting exists in storage but is deliberately not
// fetched here.
func (r *reviewRepository) ListRoots(ctx context.Context, postID uint) ([]*models.Review, error) {
	oldestFirst := func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.created_at ASC")
	}

	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", oldestFirst).
		Preload("Replies.User").
		Preload("Replies.Replies", oldestFirst).
		Preload("Replies.Replies.User").
		Preload("Replies.Replies.Replies", oldestFirst).
		Preload("Replies.Replies.Replies.User").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// DeleteSubtree removes the review and all of its descendants in one
// transaction, children before parents, and returns how many rows went.
func (r *reviewRepository) DeleteSubtree(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteReviewNode(tx, id)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func deleteReviewNode(tx *gorm.DB, id uint) (int64, error) {
	var childIDs []uint
	if err := tx.Model(&models.Review{}).
		Where("parent_id = ?", id).
		Pluck("id", &childIDs).Error; err != nil {
		return 0, err
	}

	var deleted int64
	for _, childID := range childIDs {
		n, err := deleteReviewNode(tx, childID)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	result := tx.Delete(&models.Review{}, id)
	if result.Error != nil {
		return deleted, result.Error
	}
	return deleted + result.RowsAffected, nil
}
