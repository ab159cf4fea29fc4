package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"cosmosync/internal/clients"
	"cosmosync/internal/models"
)

type fakeDatasetRepo struct {
	items        []models.DatasetItem
	replaceCalls int
	replaceErr   error
}

func (f *fakeDatasetRepo) ReplaceAll(ctx context.Context, items []models.DatasetItem) (int, error) {
	f.replaceCalls++
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	f.items = items
	return len(items), nil
}

func (f *fakeDatasetRepo) List(ctx context.Context, sortBy, order string, limit int) ([]models.DatasetItem, error) {
	return f.items, nil
}

func (f *fakeDatasetRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeNASAClient struct {
	catalog    map[string]interface{}
	catalogErr error
	apod       json.RawMessage
	apodErr    error
	neo        json.RawMessage
	neoErr     error
	donki      map[string]json.RawMessage
	donkiErr   error
}

func (f *fakeNASAClient) FetchDatasetCatalog(ctx context.Context) (map[string]interface{}, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalog, nil
}

func (f *fakeNASAClient) FetchAPOD(ctx context.Context) (json.RawMessage, error) {
	return f.apod, f.apodErr
}

func (f *fakeNASAClient) FetchNEOFeed(ctx context.Context) (json.RawMessage, error) {
	return f.neo, f.neoErr
}

func (f *fakeNASAClient) FetchDONKI(ctx context.Context, eventType string) (json.RawMessage, error) {
	if f.donkiErr != nil {
		return nil, f.donkiErr
	}
	return f.donki[eventType], nil
}

func itemByDatasetID(items []models.DatasetItem, datasetID string) *models.DatasetItem {
	for i := range items {
		if items[i].DatasetID == datasetID {
			return &items[i]
		}
	}
	return nil
}

func TestSyncCatalog(t *testing.T) {
	t.Run("bare strings wrapped, objects stored verbatim", func(t *testing.T) {
		repo := &fakeDatasetRepo{}
		client := &fakeNASAClient{catalog: map[string]interface{}{
			"GLDS-1": "https://x/1",
			"GLDS-2": map[string]interface{}{"title": "Y"},
		}}
		svc := NewDatasetService(repo, client)

		written, err := svc.SyncCatalog(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != 2 {
			t.Fatalf("expected 2 written, got %d", written)
		}

		first := itemByDatasetID(repo.items, "GLDS-1")
		if first == nil {
			t.Fatal("GLDS-1 not stored")
		}
		var raw map[string]interface{}
		if err := json.Unmarshal(first.Raw, &raw); err != nil {
			t.Fatalf("bad raw json: %v", err)
		}
		if !reflect.DeepEqual(raw, map[string]interface{}{"REST_URL": "https://x/1"}) {
			t.Errorf("expected REST_URL wrapper, got %v", raw)
		}

		second := itemByDatasetID(repo.items, "GLDS-2")
		if second == nil {
			t.Fatal("GLDS-2 not stored")
		}
		// Unmarshal в уже заполненную map домешивает ключи, берем свежую.
		var rawObject map[string]interface{}
		if err := json.Unmarshal(second.Raw, &rawObject); err != nil {
			t.Fatalf("bad raw json: %v", err)
		}
		if !reflect.DeepEqual(rawObject, map[string]interface{}{"title": "Y"}) {
			t.Errorf("expected verbatim object, got %v", rawObject)
		}
	})

	t.Run("idempotent under stable upstream", func(t *testing.T) {
		repo := &fakeDatasetRepo{}
		client := &fakeNASAClient{catalog: map[string]interface{}{
			"GLDS-1": "https://x/1",
			"GLDS-2": map[string]interface{}{"title": "Y"},
		}}
		svc := NewDatasetService(repo, client)

		for i := 0; i < 2; i++ {
			written, err := svc.SyncCatalog(context.Background())
			if err != nil {
				t.Fatalf("sync %d: %v", i, err)
			}
			if written != 2 || len(repo.items) != 2 {
				t.Fatalf("sync %d: expected 2 items, got written=%d stored=%d", i, written, len(repo.items))
			}
		}
		if repo.replaceCalls != 2 {
			t.Errorf("expected 2 physical replaces, got %d", repo.replaceCalls)
		}
	})

	t.Run("decode failure writes nothing", func(t *testing.T) {
		repo := &fakeDatasetRepo{}
		client := &fakeNASAClient{catalogErr: &clients.DecodeError{Op: "dataset catalog", Body: "<html>", Err: errors.New("invalid character")}}
		svc := NewDatasetService(repo, client)

		written, err := svc.SyncCatalog(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		var decodeErr *clients.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("expected DecodeError, got %v", err)
		}
		if written != 0 || repo.replaceCalls != 0 {
			t.Errorf("expected zero writes, got written=%d calls=%d", written, repo.replaceCalls)
		}
	})

	t.Run("storage failure is typed", func(t *testing.T) {
		repo := &fakeDatasetRepo{replaceErr: errors.New("insert failed")}
		client := &fakeNASAClient{catalog: map[string]interface{}{"GLDS-1": "https://x/1"}}
		svc := NewDatasetService(repo, client)

		_, err := svc.SyncCatalog(context.Background())
		var storageErr *StorageError
		if !errors.As(err, &storageErr) {
			t.Fatalf("expected StorageError, got %v", err)
		}
	})
}
