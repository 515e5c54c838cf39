package vendors

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// VendorRepository интерфейс репозитория продавцов
type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context) ([]*domain.Vendor, error)
	Update(ctx context.Context, v *domain.Vendor) error
	SetPassword(ctx context.Context, id string, hash *string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

// TokenIssuer выпускает токены сессий
type TokenIssuer interface {
	Issue(vendorID string) (string, time.Time, error)
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
