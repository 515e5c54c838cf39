package get_recommendations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_recommendations: invalid input data")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("get_recommendations: store unavailable")
)
