package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cosmosync/internal/clients"
	"cosmosync/internal/models"
	"cosmosync/internal/repository"

	"github.com/google/uuid"
)

type DatasetService interface {
	SyncCatalog(ctx context.Context) (int, error)
	ListItems(ctx context.Context, limit int, sortBy, order string) ([]models.DatasetItem, error)
}

type datasetService struct {
	repo   repository.DatasetRepository
	client clients.NASAClient
}

func NewDatasetService(repo repository.DatasetRepository, client clients.NASAClient) DatasetService {
	return &datasetService{repo: repo, client: client}
}

// SyncCatalog скачивает каталог целиком и заменяет им таблицу.
// Возвращает количество записанных элементов.
func (s *datasetService) SyncCatalog(ctx context.Context) (int, error) {
	catalog, err := s.client.FetchDatasetCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch dataset catalog: %w", err)
	}

	now := time.Now().UTC()
	items := make([]models.DatasetItem, 0, len(catalog))
	for datasetID, value := range catalog {
		raw, err := wrapRawValue(value)
		if err != nil {
			return 0, fmt.Errorf("marshal dataset %s: %w", datasetID, err)
		}

		items = append(items, models.DatasetItem{
			ID:         uuid.New(),
			DatasetID:  datasetID,
			InsertedAt: now,
			Raw:        raw,
		})
	}

	written, err := s.repo.ReplaceAll(ctx, items)
	if err != nil {
		return 0, &StorageError{Op: "dataset snapshot replace", Err: err}
	}

	log.Printf("dataset catalog synced: %d items", written)
	return written, nil
}

// wrapRawValue: голая строка оборачивается в {"REST_URL": ...},
// объекты и прочие значения сохраняются дословно.
func wrapRawValue(value interface{}) ([]byte, error) {
	if s, ok := value.(string); ok {
		return json.Marshal(map[string]string{"REST_URL": s})
	}
	return json.Marshal(value)
}

func (s *datasetService) ListItems(ctx context.Context, limit int, sortBy, order string) ([]models.DatasetItem, error) {
	items, err := s.repo.List(ctx, sortBy, order, limit)
	if err != nil {
		return nil, fmt.Errorf("list dataset items: %w", err)
	}
	return items, nil
}
