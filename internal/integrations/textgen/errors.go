package textgen

import "errors"

var (
	// ErrNotConfigured возвращается, когда не задан API ключ
	ErrNotConfigured = errors.New("textgen client: api key is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("textgen client: internal error")

	// ErrUnavailable возвращается, когда сервис генерации недоступен или вернул ошибку
	ErrUnavailable = errors.New("textgen client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("textgen client: invalid response")

	// ErrEmptyResponse возвращается, когда ответ не содержит текста
	ErrEmptyResponse = errors.New("textgen client: empty response")
)
