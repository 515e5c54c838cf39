package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	ListByMarket(ctx context.Context, marketID string) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// VendorRepository интерфейс репозитория продавцов
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
}

// DeletionStore хранилище подтверждений удаления
type DeletionStore interface {
	Put(ticket domain.DeletionTicket) error
	TakeIf(token string, match func(domain.DeletionTicket) bool) (*domain.DeletionTicket, error)
}

// Notifier уведомляет подписчиков об изменении коллекции
type Notifier interface {
	Notify(ctx context.Context, collection domain.Collection)
}

// OutcomeRecorder счетчик результатов операций (метрики)
type OutcomeRecorder interface {
	BookingOutcome(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
