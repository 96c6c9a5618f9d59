package repository

import (
	"context"

	"cineverse/internal/models"

	"gorm.io/gorm"
)

// SeriesRepository defines the interface for series operations.
type SeriesRepository interface {
	Create(ctx context.Context, series *models.Series) error
	GetByID(ctx context.Context, id uint) (*models.Series, error)
	List(ctx context.Context) ([]*models.Series, error)
}

type seriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository creates a new SeriesRepository
func NewSeriesRepository(db *gorm.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) Create(ctx context.Context, series *models.Series) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *seriesRepository) GetByID(ctx context.Context, id uint) (*models.Series, error) {
	var series models.Series
	if err := r.db.WithContext(ctx).First(&series, id).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) List(ctx context.Context) ([]*models.Series, error) {
	var series []*models.Series
	err := r.db.WithContext(ctx).Order("title ASC").Find(&series).Error
	return series, err
}
