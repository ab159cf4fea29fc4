package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

const clientTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 30 * time.Second,
		},
	}
}

// getJSON выполняет GET и возвращает валидный JSON-ответ как сырые байты.
// Любой другой исход - типизированная ошибка из errors.go.
func getJSON(ctx context.Context, client *http.Client, op, rawURL string, params url.Values) (json.RawMessage, error) {
	reqURL := rawURL
	if len(params) > 0 {
		if u, err := url.Parse(rawURL); err == nil {
			q := u.Query()
			for key, values := range params {
				for _, v := range values {
					q.Add(key, v)
				}
			}
			u.RawQuery = q.Encode()
			reqURL = u.String()
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req.Header.Set("User-Agent", "cosmosync/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamStatusError{Op: op, Status: resp.StatusCode, Body: truncateBody(body)}
	}

	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &DecodeError{Op: op, Body: truncateBody(body), Err: err}
	}

	return body, nil
}
