package clients

import (
	"context"
	"encoding/json"
	"net/http"
)

type SpaceXClient interface {
	GetNextLaunch(ctx context.Context) (json.RawMessage, error)
}

type spacexClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSpaceXClient(baseURL string) SpaceXClient {
	return &spacexClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (c *spacexClient) GetNextLaunch(ctx context.Context) (json.RawMessage, error) {
	return getJSON(ctx, c.httpClient, "spacex", c.baseURL, nil)
}
