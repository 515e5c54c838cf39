package announcements

import "errors"

var (
	// ErrAnnouncementNotFound возвращается, когда объявление не найдено
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrAccessDenied возвращается, когда у продавца нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("store unavailable")
)
