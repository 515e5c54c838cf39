package update_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда продавец не владеет бронированием
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrMarketRequired возвращается, когда рынок не выбран
	ErrMarketRequired = errors.New("update_booking: market is required")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("update_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrMarketNotFound возвращается, когда рынок не найден
	ErrMarketNotFound = errors.New("update_booking: market not found")

	// ErrBookingConflict возвращается, когда на рынке уже есть бронирование ближе 7 дней
	ErrBookingConflict = errors.New("update_booking: conflicting booking within 7 days")

	// ErrConcurrentModification возвращается, когда параллельная запись помешала транзакции
	ErrConcurrentModification = errors.New("update_booking: concurrent modification, resubmit")

	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("update_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
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
