package import_bookings

import "errors"

var (
	// ErrAccessDenied возвращается, когда импорт запрошен не администратором
	ErrAccessDenied = errors.New("import_bookings: access denied")

	// ErrInvalidFile возвращается, когда файл не удается разобрать или в нем нет обязательных колонок
	ErrInvalidFile = errors.New("import_bookings: invalid csv file")

	// ErrStore возвращается, когда хранилище недоступно; импорт откатывается целиком
	ErrStore = errors.New("import_bookings: store unavailable")
)
