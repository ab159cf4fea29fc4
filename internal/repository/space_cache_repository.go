package repository

import (
	"context"
	"errors"

	"cosmosync/internal/models"

	"gorm.io/gorm"
)

type SpaceCacheRepository interface {
	Create(ctx context.Context, cache *models.SpaceCache) error
	GetLatest(ctx context.Context, source string) (*models.SpaceCache, error)
	Summary(ctx context.Context) ([]models.SpaceCache, error)
}

type spaceCacheRepository struct {
	db *gorm.DB
}

func NewSpaceCacheRepository(db *gorm.DB) SpaceCacheRepository {
	return &spaceCacheRepository{db: db}
}

func (r *spaceCacheRepository) Create(ctx context.Context, cache *models.SpaceCache) error {
	return r.db.WithContext(ctx).Create(cache).Error
}

// GetLatest - последняя по порядку вставки запись для источника.
func (r *spaceCacheRepository) GetLatest(ctx context.Context, source string) (*models.SpaceCache, error) {
	var cache models.SpaceCache
	err := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("id DESC").
		First(&cache).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

// Summary - по одной самой свежей записи на каждый источник.
func (r *spaceCacheRepository) Summary(ctx context.Context) ([]models.SpaceCache, error) {
	var caches []models.SpaceCache
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (source) id, source, fetched_at, payload, created_at
		     FROM space_caches
		     ORDER BY source, id DESC`).
		Scan(&caches).
		Error
	return caches, err
}
