package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVendorNotFound возвращается, когда продавец не найден
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrAccessDenied возвращается, когда у продавца нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConfirmationInvalid возвращается, когда подтверждение удаления неверно, истекло или уже использовано
	ErrConfirmationInvalid = errors.New("deletion confirmation is invalid or expired")

	// ErrStore возвращается, когда хранилище недоступно; текст ошибки показывается пользователю
	ErrStore = errors.New("store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
