package update_booking

import "github.com/m04kA/SMC-StallCalendar/internal/domain"

// Request модель запроса на изменение бронирования
// Remark и SalesQuantity меняются, только если переданы
type Request struct {
	VendorID      string
	BookingID     string
	MarketID      string
	Date          string
	Remark        *string
	SalesQuantity *int
	AllowConflict bool
}

// Response модель ответа с измененным бронированием
type Response struct {
	Booking   *domain.Booking
	Conflicts []*domain.Booking
}
