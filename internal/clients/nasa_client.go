package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

type NASAClient interface {
	FetchDatasetCatalog(ctx context.Context) (map[string]interface{}, error)
	FetchAPOD(ctx context.Context) (json.RawMessage, error)
	FetchNEOFeed(ctx context.Context) (json.RawMessage, error)
	FetchDONKI(ctx context.Context, eventType string) (json.RawMessage, error)
}

type nasaClient struct {
	apiKey     string
	catalogURL string
	apodURL    string
	neoURL     string
	donkiURL   string
	client     *http.Client
}

type NASAConfig struct {
	APIKey     string
	CatalogURL string
	APODURL    string
	NEOURL     string
	DONKIURL   string
}

func NewNASAClient(config NASAConfig) NASAClient {
	return &nasaClient{
		apiKey:     config.APIKey,
		catalogURL: config.CatalogURL,
		apodURL:    config.APODURL,
		neoURL:     config.NEOURL,
		donkiURL:   config.DONKIURL,
		client:     newHTTPClient(),
	}
}

// withKey добавляет api_key только если ключ сконфигурирован.
// Отсутствие ключа не фатально - NASA работает и с DEMO-лимитами.
func (c *nasaClient) withKey(op string, params url.Values) url.Values {
	if c.apiKey != "" {
		params.Add("api_key", c.apiKey)
	} else {
		log.Printf("%s: no NASA API key configured", op)
	}
	return params
}

// FetchDatasetCatalog - каталог приходит одним JSON-объектом,
// ключ = идентификатор датасета.
func (c *nasaClient) FetchDatasetCatalog(ctx context.Context) (map[string]interface{}, error) {
	const op = "dataset catalog"

	raw, err := getJSON(ctx, c.client, op, c.catalogURL, nil)
	if err != nil {
		return nil, err
	}

	var catalog map[string]interface{}
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, &DecodeError{Op: op, Body: truncateBody(raw), Err: err}
	}

	return catalog, nil
}

func (c *nasaClient) FetchAPOD(ctx context.Context) (json.RawMessage, error) {
	const op = "apod"

	params := url.Values{}
	params.Add("thumbs", "true")

	return getJSON(ctx, c.client, op, c.apodURL, c.withKey(op, params))
}

// Окно NeoWs: [сегодня-2д, сегодня] в UTC.
func (c *nasaClient) FetchNEOFeed(ctx context.Context) (json.RawMessage, error) {
	const op = "neo"

	today := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02")

	params := url.Values{}
	params.Add("start_date", start)
	params.Add("end_date", today)

	return getJSON(ctx, c.client, op, c.neoURL, c.withKey(op, params))
}

// Окно DONKI (FLR/CME): [сегодня-5д, сегодня] в UTC.
func (c *nasaClient) FetchDONKI(ctx context.Context, eventType string) (json.RawMessage, error) {
	op := fmt.Sprintf("donki %s", eventType)

	today := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")

	params := url.Values{}
	params.Add("startDate", start)
	params.Add("endDate", today)

	return getJSON(ctx, c.client, op, fmt.Sprintf("%s/%s", c.donkiURL, eventType), c.withKey(op, params))
}
