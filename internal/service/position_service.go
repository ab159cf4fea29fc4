package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"cosmosync/internal/clients"
	"cosmosync/internal/models"
	"cosmosync/internal/repository"
)

type PositionService interface {
	FetchAndStorePosition(ctx context.Context) error
	GetLastPosition(ctx context.Context) (*models.PositionLog, error)
	GetLastPositions(ctx context.Context, n int) ([]*models.PositionLog, error)
	GetTrend(ctx context.Context) (*models.Trend, error)
}

type positionService struct {
	repo      repository.PositionRepository
	client    clients.PositionClient
	sourceURL string
}

func NewPositionService(
	repo repository.PositionRepository,
	client clients.PositionClient,
	sourceURL string,
) PositionService {
	return &positionService{
		repo:      repo,
		client:    client,
		sourceURL: sourceURL,
	}
}

// FetchAndStorePosition - один цикл адаптера: fetch -> parse -> append.
// Ничего не пишется, пока ответ не распарсен.
func (s *positionService) FetchAndStorePosition(ctx context.Context) error {
	data, err := s.client.GetCurrentPosition(ctx)
	if err != nil {
		return fmt.Errorf("fetch position: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal position payload: %w", err)
	}

	entry := &models.PositionLog{
		FetchedAt: time.Now().UTC(),
		SourceURL: s.sourceURL,
		Payload:   payload,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return &StorageError{Op: "position append", Err: err}
	}

	log.Printf("position stored: id=%d fetched_at=%s", entry.ID, entry.FetchedAt.Format(time.RFC3339))
	return nil
}

func (s *positionService) GetLastPosition(ctx context.Context) (*models.PositionLog, error) {
	return s.repo.GetLast(ctx)
}

func (s *positionService) GetLastPositions(ctx context.Context, n int) ([]*models.PositionLog, error) {
	if n < 1 || n > 10000 {
		n = 1000
	}
	return s.repo.GetLastN(ctx, n)
}

// GetTrend - смещение между двумя последними сэмплами.
// Меньше двух записей - нулевой тренд, не ошибка.
func (s *positionService) GetTrend(ctx context.Context) (*models.Trend, error) {
	positions, err := s.repo.GetLastN(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}

	if len(positions) < 2 {
		return &models.Trend{}, nil
	}

	// positions[0] - новее (id DESC)
	return calculateTrend(positions[0], positions[1]), nil
}

func calculateTrend(newer, older *models.PositionLog) *models.Trend {
	lat1, lat1OK := payloadNum(older.Payload, "latitude")
	lon1, lon1OK := payloadNum(older.Payload, "longitude")
	lat2, lat2OK := payloadNum(newer.Payload, "latitude")
	lon2, lon2OK := payloadNum(newer.Payload, "longitude")

	trend := &models.Trend{
		DtSec:    newer.FetchedAt.Sub(older.FetchedAt).Seconds(),
		FromTime: &older.FetchedAt,
		ToTime:   &newer.FetchedAt,
	}

	if lat1OK {
		trend.FromLat = &lat1
	}
	if lon1OK {
		trend.FromLon = &lon1
	}
	if lat2OK {
		trend.ToLat = &lat2
	}
	if lon2OK {
		trend.ToLon = &lon2
	}

	// Битые или отсутствующие координаты не валят вызов: нулевая
	// дистанция, movement=false.
	if lat1OK && lon1OK && lat2OK && lon2OK {
		trend.DeltaKm = haversineKm(lat1, lon1, lat2, lon2)
		trend.Movement = trend.DeltaKm > 0.1
	}

	// Скорость берется из свежего сэмпла как есть, не пересчитывается
	// из дистанции и времени.
	if v, ok := payloadNum(newer.Payload, "velocity"); ok {
		trend.VelocityKmh = &v
	}

	return trend
}

// payloadNum достает числовое поле из jsonb-пэйлоада; числовые строки
// коэрсятся, всё остальное считается отсутствующим значением.
func payloadNum(payload []byte, key string) (float64, bool) {
	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return 0, false
	}

	switch v := data[key].(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
