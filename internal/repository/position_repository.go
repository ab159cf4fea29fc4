package repository

import (
	"context"
	"errors"

	"cosmosync/internal/models"

	"gorm.io/gorm"
)

type PositionRepository interface {
	Create(ctx context.Context, log *models.PositionLog) error
	GetLast(ctx context.Context) (*models.PositionLog, error)
	GetLastN(ctx context.Context, n int) ([]*models.PositionLog, error)
	Count(ctx context.Context) (int64, error)
}

type positionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

// Create дописывает одну запись в лог; id заполняется базой.
func (r *positionRepository) Create(ctx context.Context, log *models.PositionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *positionRepository) GetLast(ctx context.Context) (*models.PositionLog, error) {
	var log models.PositionLog
	err := r.db.WithContext(ctx).
		Order("id DESC").
		First(&log).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *positionRepository) GetLastN(ctx context.Context, n int) ([]*models.PositionLog, error) {
	var logs []*models.PositionLog
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(n).
		Find(&logs).
		Error
	return logs, err
}

func (r *positionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PositionLog{}).
		Count(&count).
		Error
	return count, err
}
