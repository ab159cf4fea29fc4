package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cosmosync/internal/clients"
	"cosmosync/internal/models"
)

type fakeSpaceCacheRepo struct {
	rows      []models.SpaceCache
	createErr error
}

func (f *fakeSpaceCacheRepo) Create(ctx context.Context, cache *models.SpaceCache) error {
	if f.createErr != nil {
		return f.createErr
	}
	cache.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *cache)
	return nil
}

func (f *fakeSpaceCacheRepo) GetLatest(ctx context.Context, source string) (*models.SpaceCache, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].Source == source {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeSpaceCacheRepo) Summary(ctx context.Context) ([]models.SpaceCache, error) {
	latest := map[string]models.SpaceCache{}
	for _, row := range f.rows {
		latest[row.Source] = row
	}
	var out []models.SpaceCache
	for _, row := range latest {
		out = append(out, row)
	}
	return out, nil
}

type fakeSpaceXClient struct {
	launch json.RawMessage
	err    error
}

func (f *fakeSpaceXClient) GetNextLaunch(ctx context.Context) (json.RawMessage, error) {
	return f.launch, f.err
}

func newCacheFixture() (*fakeSpaceCacheRepo, *fakeNASAClient, *fakeSpaceXClient, SpaceCacheService) {
	repo := &fakeSpaceCacheRepo{}
	nasa := &fakeNASAClient{
		apod: json.RawMessage(`{"title": "M31"}`),
		neo:  json.RawMessage(`{"element_count": 3}`),
		donki: map[string]json.RawMessage{
			"FLR": json.RawMessage(`[{"flrID": "1"}]`),
			"CME": json.RawMessage(`[]`),
		},
	}
	spacex := &fakeSpaceXClient{launch: json.RawMessage(`{"name": "Starlink"}`)}
	return repo, nasa, spacex, NewSpaceCacheService(repo, nasa, spacex)
}

func TestGetLatestCache(t *testing.T) {
	t.Run("unknown source is rejected", func(t *testing.T) {
		_, _, _, svc := newCacheFixture()

		_, err := svc.GetLatest(context.Background(), "jwst")
		if !errors.Is(err, ErrUnknownSource) {
			t.Fatalf("expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("no rows yet means no data, not an error", func(t *testing.T) {
		_, _, _, svc := newCacheFixture()

		cache, err := svc.GetLatest(context.Background(), SourceAPOD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache != nil {
			t.Errorf("expected nil cache, got %+v", cache)
		}
	})

	t.Run("latest is the most recently inserted row", func(t *testing.T) {
		_, _, _, svc := newCacheFixture()

		if err := svc.FetchAndStoreAPOD(context.Background()); err != nil {
			t.Fatalf("first fetch: %v", err)
		}
		if err := svc.FetchAndStoreAPOD(context.Background()); err != nil {
			t.Fatalf("second fetch: %v", err)
		}

		cache, err := svc.GetLatest(context.Background(), SourceAPOD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache == nil || cache.ID != 2 {
			t.Errorf("expected row id 2, got %+v", cache)
		}
	})
}

func TestFetchAndStoreCacheSources(t *testing.T) {
	repo, _, _, svc := newCacheFixture()

	steps := []struct {
		source string
		run    func(context.Context) error
	}{
		{SourceAPOD, svc.FetchAndStoreAPOD},
		{SourceNEO, svc.FetchAndStoreNEO},
		{SourceFlare, svc.FetchAndStoreFlares},
		{SourceCME, svc.FetchAndStoreCME},
		{SourceSpaceX, svc.FetchAndStoreNextLaunch},
	}

	for _, step := range steps {
		t.Run(step.source, func(t *testing.T) {
			before := len(repo.rows)
			if err := step.run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.rows) != before+1 {
				t.Fatalf("expected one appended row")
			}
			if got := repo.rows[len(repo.rows)-1].Source; got != step.source {
				t.Errorf("expected source %q, got %q", step.source, got)
			}
		})
	}
}

func TestRefreshAll(t *testing.T) {
	t.Run("one failing source does not block the rest", func(t *testing.T) {
		repo, nasa, _, svc := newCacheFixture()
		nasa.apodErr = &clients.UpstreamStatusError{Op: "apod", Status: 503, Body: "unavailable"}

		statuses := svc.RefreshAll(context.Background())

		if statuses[SourceAPOD] == "ok" {
			t.Error("expected apod failure to be reported")
		}
		for _, source := range []string{SourceNEO, SourceFlare, SourceCME, SourceSpaceX} {
			if statuses[source] != "ok" {
				t.Errorf("expected %s ok, got %q", source, statuses[source])
			}
		}
		if len(repo.rows) != 4 {
			t.Errorf("expected 4 rows written, got %d", len(repo.rows))
		}
	})

	t.Run("upstream failure writes nothing for that source", func(t *testing.T) {
		repo, nasa, _, svc := newCacheFixture()
		nasa.neoErr = &clients.DecodeError{Op: "neo", Body: "<html>", Err: errors.New("invalid character")}

		svc.RefreshAll(context.Background())

		for _, row := range repo.rows {
			if row.Source == SourceNEO {
				t.Fatal("neo row written despite decode failure")
			}
		}
	})
}
