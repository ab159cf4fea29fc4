package clients

import (
	"context"
	"encoding/json"
	"net/http"
)

type PositionClient interface {
	GetCurrentPosition(ctx context.Context) (map[string]interface{}, error)
}

type positionClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPositionClient(baseURL string) PositionClient {
	return &positionClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (c *positionClient) GetCurrentPosition(ctx context.Context) (map[string]interface{}, error) {
	const op = "position"

	raw, err := getJSON(ctx, c.httpClient, op, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &DecodeError{Op: op, Body: truncateBody(raw), Err: err}
	}

	return data, nil
}
