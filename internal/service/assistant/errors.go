package assistant

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrMarketNotFound возвращается, когда рынок не найден
	ErrMarketNotFound = errors.New("market not found")

	// ErrAccessDenied возвращается, когда у продавца нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrRateLimited возвращается, когда продавец превысил лимит запросов к генерации
	ErrRateLimited = errors.New("too many generation requests")

	// ErrExternalService возвращается, когда сервис генерации текста недоступен
	ErrExternalService = errors.New("text generation service unavailable")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("store unavailable")
)
