package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type AppConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"cosmosync"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type PositionConfig struct {
	URL      string        `env:"POSITION_URL" envDefault:"https://api.wheretheiss.at/v1/satellites/25544"`
	Interval time.Duration `env:"POSITION_INTERVAL" envDefault:"120s"`
}

type NASAConfig struct {
	APIKey     string `env:"NASA_API_KEY"`
	CatalogURL string `env:"NASA_CATALOG_URL" envDefault:"https://visualization.osdr.nasa.gov/biodata/api/v2/datasets/?format=json"`
	APODURL    string `env:"NASA_APOD_URL" envDefault:"https://api.nasa.gov/planetary/apod"`
	NEOURL     string `env:"NASA_NEO_URL" envDefault:"https://api.nasa.gov/neo/rest/v1/feed"`
	DONKIURL   string `env:"NASA_DONKI_URL" envDefault:"https://api.nasa.gov/DONKI"`
}

type SpaceXConfig struct {
	URL string `env:"SPACEX_URL" envDefault:"https://api.spacexdata.com/v4/launches/next"`
}

// Кадентности фоновых задач. Значения по умолчанию соответствуют
// интервалам боевого развертывания.
type WorkersConfig struct {
	DatasetInterval time.Duration `env:"WORKER_DATASET_INTERVAL" envDefault:"600s"`
	APODInterval    time.Duration `env:"WORKER_APOD_INTERVAL" envDefault:"12h"`
	NEOInterval     time.Duration `env:"WORKER_NEO_INTERVAL" envDefault:"2h"`
	DONKIInterval   time.Duration `env:"WORKER_DONKI_INTERVAL" envDefault:"1h"`
	SpaceXInterval  time.Duration `env:"WORKER_SPACEX_INTERVAL" envDefault:"1h"`
}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Position PositionConfig
	NASA     NASAConfig
	SpaceX   SpaceXConfig
	Workers  WorkersConfig
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
