package deletion

import "errors"

var (
	// ErrTicketNotFound возвращается, когда подтверждение не найдено или уже использовано
	ErrTicketNotFound = errors.New("deletion.store: ticket not found")

	// ErrTicketMismatch возвращается, когда подтверждение выдано на другую операцию
	ErrTicketMismatch = errors.New("deletion.store: ticket does not match")

	// ErrTicketExists возвращается при повторной выдаче того же токена
	ErrTicketExists = errors.New("deletion.store: ticket already exists")
)
