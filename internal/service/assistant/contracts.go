package assistant

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// TextGenerator клиент генерации текста
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByMarket(ctx context.Context, marketID string) ([]*domain.Booking, error)
}

// MarketRepository интерфейс репозитория рынков
type MarketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Market, error)
}

// VendorRepository интерфейс репозитория продавцов
type VendorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
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
