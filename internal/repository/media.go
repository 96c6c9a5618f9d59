package repository

import (
	"context"

	"cineverse/internal/models"

	"gorm.io/gorm"
)

// SubtitleRepository defines the interface for subtitle attachments.
type SubtitleRepository interface {
	Create(ctx context.Context, subtitle *models.Subtitle) error
	GetByID(ctx context.Context, id uint) (*models.Subtitle, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Subtitle, error)
	Delete(ctx context.Context, id uint) error
}

type subtitleRepository struct {
	db *gorm.DB
}

// NewSubtitleRepository creates a new SubtitleRepository
func NewSubtitleRepository(db *gorm.DB) SubtitleRepository {
	return &subtitleRepository{db: db}
}

func (r *subtitleRepository) Create(ctx context.Context, subtitle *models.Subtitle) error {
	return r.db.WithContext(ctx).Create(subtitle).Error
}

func (r *subtitleRepository) GetByID(ctx context.Context, id uint) (*models.Subtitle, error) {
	var subtitle models.Subtitle
	if err := r.db.WithContext(ctx).Preload("Uploader").First(&subtitle, id).Error; err != nil {
		return nil, err
	}
	return &subtitle, nil
}

func (r *subtitleRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Subtitle, error) {
	var subtitles []*models.Subtitle
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("post_id = ?", postID).
		Order("language ASC").
		Find(&subtitles).Error
	return subtitles, err
}

func (r *subtitleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Subtitle{}, id).Error
}

// MediaLinkRepository defines read access to a post's media links; writes go
// through PostRepository.ReplaceMediaLinks so link sets swap atomically.
type MediaLinkRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]*models.MediaLink, error)
}

type mediaLinkRepository struct {
	db *gorm.DB
}

// NewMediaLinkRepository creates a new MediaLinkRepository
func NewMediaLinkRepository(db *gorm.DB) MediaLinkRepository {
	return &mediaLinkRepository{db: db}
}

func (r *mediaLinkRepository) ListByPost(ctx context.Context, postID uint) ([]*models.MediaLink, error) {
	var links []*models.MediaLink
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("quality ASC").
		Find(&links).Error
	return links, err
}
