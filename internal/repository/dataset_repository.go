package repository

import (
	"context"
	"strings"

	"cosmosync/internal/models"

	"gorm.io/gorm"
)

type DatasetRepository interface {
	ReplaceAll(ctx context.Context, items []models.DatasetItem) (int, error)
	List(ctx context.Context, sortBy, order string, limit int) ([]models.DatasetItem, error)
	Count(ctx context.Context) (int64, error)
}

type datasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) DatasetRepository {
	return &datasetRepository{db: db}
}

// Колонки, по которым разрешена сортировка. Всё остальное - инъекция
// или опечатка, молча откатываемся на inserted_at.
var datasetSortColumns = map[string]bool{
	"id":          true,
	"dataset_id":  true,
	"title":       true,
	"status":      true,
	"updated_at":  true,
	"inserted_at": true,
}

func sortColumn(sortBy string) string {
	if datasetSortColumns[sortBy] {
		return sortBy
	}
	return "inserted_at"
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// ReplaceAll - snapshot-replace: DELETE и вставки выполняются как
// независимые стейтменты, без общей транзакции. Падение между ними
// оставляет каталог пустым до следующей синхронизации.
func (r *datasetRepository) ReplaceAll(ctx context.Context, items []models.DatasetItem) (int, error) {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM dataset_items").Error; err != nil {
		return 0, err
	}

	if len(items) == 0 {
		return 0, nil
	}

	if err := r.db.WithContext(ctx).CreateInBatches(items, 100).Error; err != nil {
		return 0, err
	}

	return len(items), nil
}

// clampLimit: нет или мусор - дефолт, слишком много - потолок.
func clampLimit(limit int) int {
	switch {
	case limit < 1:
		return 20
	case limit > 100:
		return 100
	default:
		return limit
	}
}

func (r *datasetRepository) List(ctx context.Context, sortBy, order string, limit int) ([]models.DatasetItem, error) {
	limit = clampLimit(limit)

	var items []models.DatasetItem
	err := r.db.WithContext(ctx).
		Order(sortColumn(sortBy) + " " + sortDirection(order)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *datasetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DatasetItem{}).
		Count(&count).
		Error
	return count, err
}
