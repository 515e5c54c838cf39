package bootstrap

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// VendorRepository интерфейс репозитория продавцов
type VendorRepository interface {
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, v *domain.Vendor) error
}

// MarketRepository интерфейс репозитория рынков
type MarketRepository interface {
	Upsert(ctx context.Context, m *domain.Market) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
