package markets

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// MarketRepository интерфейс репозитория рынков
type MarketRepository interface {
	Create(ctx context.Context, m *domain.Market) error
	GetByID(ctx context.Context, id string) (*domain.Market, error)
	List(ctx context.Context) ([]*domain.Market, error)
	FindByName(ctx context.Context, name, city string) ([]*domain.Market, error)
	Update(ctx context.Context, m *domain.Market) error
	Delete(ctx context.Context, id string) error
}

// VendorRepository интерфейс репозитория продавцов
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
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
