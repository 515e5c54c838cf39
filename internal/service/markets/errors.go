package markets

import "errors"

var (
	// ErrMarketNotFound возвращается, когда рынок не найден
	ErrMarketNotFound = errors.New("market not found")

	// ErrAccessDenied возвращается, когда у продавца нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("store unavailable")
)
