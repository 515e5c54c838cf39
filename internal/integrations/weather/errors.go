package weather

import "errors"

var (
	// ErrCityNotFound возвращается, когда город не найден геокодером
	ErrCityNotFound = errors.New("weather client: city not found")

	// ErrNoForecast возвращается, когда прогноз на дату отсутствует
	ErrNoForecast = errors.New("weather client: no forecast for date")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weather client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("weather client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Прогноз недоступен, бронирование продолжает работать без него
	ErrServiceDegraded = errors.New("weather unavailable: graceful degradation applied")
)
