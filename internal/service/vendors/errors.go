package vendors

import "errors"

var (
	// ErrVendorNotFound возвращается, когда продавец не найден
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrVendorExists возвращается при добавлении продавца с занятым ID
	ErrVendorExists = errors.New("vendor already exists")

	// ErrInvalidCredentials возвращается при неверном пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDenied возвращается, когда у продавца нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrProtectedVendor возвращается при попытке удалить или разжаловать основного администратора
	ErrProtectedVendor = errors.New("vendor is protected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConfirmationInvalid возвращается, когда подтверждение удаления неверно, истекло или уже использовано
	ErrConfirmationInvalid = errors.New("deletion confirmation is invalid or expired")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
