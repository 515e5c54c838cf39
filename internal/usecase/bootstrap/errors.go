package bootstrap

import "errors"

var (
	// ErrInvalidSeed возвращается при некорректных начальных данных
	ErrInvalidSeed = errors.New("bootstrap: invalid seed data")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("bootstrap: store unavailable")
)
