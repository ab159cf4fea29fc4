package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"cosmosync/internal/clients"
	"cosmosync/internal/models"
	"cosmosync/internal/repository"
)

// Фиксированный набор источников кэша.
const (
	SourceAPOD   = "apod"
	SourceNEO    = "neo"
	SourceFlare  = "flr"
	SourceCME    = "cme"
	SourceSpaceX = "spacex"
)

var CacheSources = []string{SourceAPOD, SourceNEO, SourceFlare, SourceCME, SourceSpaceX}

var ErrUnknownSource = errors.New("unknown cache source")

func IsCacheSource(source string) bool {
	for _, s := range CacheSources {
		if s == source {
			return true
		}
	}
	return false
}

type SpaceCacheService interface {
	FetchAndStoreAPOD(ctx context.Context) error
	FetchAndStoreNEO(ctx context.Context) error
	FetchAndStoreFlares(ctx context.Context) error
	FetchAndStoreCME(ctx context.Context) error
	FetchAndStoreNextLaunch(ctx context.Context) error
	RefreshAll(ctx context.Context) map[string]string
	GetLatest(ctx context.Context, source string) (*models.SpaceCache, error)
	GetSummary(ctx context.Context) ([]models.SpaceCache, error)
}

type spaceCacheService struct {
	repo         repository.SpaceCacheRepository
	nasaClient   clients.NASAClient
	spacexClient clients.SpaceXClient
}

func NewSpaceCacheService(
	repo repository.SpaceCacheRepository,
	nasaClient clients.NASAClient,
	spacexClient clients.SpaceXClient,
) SpaceCacheService {
	return &spaceCacheService{
		repo:         repo,
		nasaClient:   nasaClient,
		spacexClient: spacexClient,
	}
}

// writeCache - единственная точка записи кэша: одна строка на успешный фетч.
func (s *spaceCacheService) writeCache(ctx context.Context, source string, payload json.RawMessage) error {
	entry := &models.SpaceCache{
		Source:    source,
		FetchedAt: time.Now().UTC(),
		Payload:   []byte(payload),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return &StorageError{Op: source + " cache append", Err: err}
	}
	return nil
}

func (s *spaceCacheService) FetchAndStoreAPOD(ctx context.Context) error {
	payload, err := s.nasaClient.FetchAPOD(ctx)
	if err != nil {
		return fmt.Errorf("fetch apod: %w", err)
	}
	return s.writeCache(ctx, SourceAPOD, payload)
}

func (s *spaceCacheService) FetchAndStoreNEO(ctx context.Context) error {
	payload, err := s.nasaClient.FetchNEOFeed(ctx)
	if err != nil {
		return fmt.Errorf("fetch neo feed: %w", err)
	}
	return s.writeCache(ctx, SourceNEO, payload)
}

func (s *spaceCacheService) FetchAndStoreFlares(ctx context.Context) error {
	payload, err := s.nasaClient.FetchDONKI(ctx, "FLR")
	if err != nil {
		return fmt.Errorf("fetch donki flr: %w", err)
	}
	return s.writeCache(ctx, SourceFlare, payload)
}

func (s *spaceCacheService) FetchAndStoreCME(ctx context.Context) error {
	payload, err := s.nasaClient.FetchDONKI(ctx, "CME")
	if err != nil {
		return fmt.Errorf("fetch donki cme: %w", err)
	}
	return s.writeCache(ctx, SourceCME, payload)
}

func (s *spaceCacheService) FetchAndStoreNextLaunch(ctx context.Context) error {
	payload, err := s.spacexClient.GetNextLaunch(ctx)
	if err != nil {
		return fmt.Errorf("fetch next launch: %w", err)
	}
	return s.writeCache(ctx, SourceSpaceX, payload)
}

// RefreshAll прогоняет все кэшируемые источники по одному разу.
// Падение одного источника не мешает остальным.
func (s *spaceCacheService) RefreshAll(ctx context.Context) map[string]string {
	fetchers := map[string]func(context.Context) error{
		SourceAPOD:   s.FetchAndStoreAPOD,
		SourceNEO:    s.FetchAndStoreNEO,
		SourceFlare:  s.FetchAndStoreFlares,
		SourceCME:    s.FetchAndStoreCME,
		SourceSpaceX: s.FetchAndStoreNextLaunch,
	}

	statuses := make(map[string]string, len(CacheSources))
	for _, source := range CacheSources {
		if err := fetchers[source](ctx); err != nil {
			log.Printf("refresh %s: %v", source, err)
			statuses[source] = err.Error()
			continue
		}
		statuses[source] = "ok"
	}
	return statuses
}

func (s *spaceCacheService) GetLatest(ctx context.Context, source string) (*models.SpaceCache, error) {
	if !IsCacheSource(source) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return s.repo.GetLatest(ctx, source)
}

func (s *spaceCacheService) GetSummary(ctx context.Context) ([]models.SpaceCache, error) {
	return s.repo.Summary(ctx)
}
