package create_booking

import "github.com/m04kA/SMC-StallCalendar/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	VendorID      string  // ID продавца из сессии
	MarketID      string  // ID рынка
	Date          string  // Дата в формате YYYY-MM-DD
	Remark        *string // Примечание (опционально)
	SalesQuantity *int    // Количество продаж (опционально)
	AllowConflict bool    // Подтверждение записи несмотря на конфликт (политика warn)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking   *domain.Booking
	Conflicts []*domain.Booking // предупреждения, если запись прошла с конфликтом
}
