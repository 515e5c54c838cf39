package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

var (
	// ErrMarketRequired возвращается, когда рынок не выбран
	ErrMarketRequired = errors.New("create_booking: market is required")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrVendorNotFound возвращается, когда продавец не найден
	ErrVendorNotFound = errors.New("create_booking: vendor not found")

	// ErrMarketNotFound возвращается, когда рынок не найден
	ErrMarketNotFound = errors.New("create_booking: market not found")

	// ErrBookingConflict возвращается, когда на рынке уже есть бронирование ближе 7 дней
	ErrBookingConflict = errors.New("create_booking: conflicting booking within 7 days")

	// ErrConcurrentModification возвращается, когда параллельная запись помешала транзакции
	ErrConcurrentModification = errors.New("create_booking: concurrent modification, resubmit")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError отказ из-за конфликта с перечнем конфликтующих бронирований
type ConflictError struct {
	Conflicts []*domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting booking(s)", ErrBookingConflict, len(e.Conflicts))
}

// Is позволяет проверять ошибку через errors.Is(err, ErrBookingConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrBookingConflict
}
