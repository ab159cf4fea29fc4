package clients

import "fmt"

// Тело ответа в ошибках обрезается, чтобы не раздувать логи.
const maxBodyPreview = 500

func truncateBody(body []byte) string {
	if len(body) > maxBodyPreview {
		return string(body[:maxBodyPreview])
	}
	return string(body)
}

// TransportError - запрос не удалось отправить (таймаут, DNS, обрыв).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamStatusError - источник вернул не-2xx статус.
type UpstreamStatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d: %s", e.Op, e.Status, e.Body)
}

// DecodeError - тело ответа не является валидным JSON.
type DecodeError struct {
	Op   string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode JSON: %v (body: %s)", e.Op, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }
