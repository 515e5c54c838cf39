package list_markets

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

type MarketService interface {
	List(ctx context.Context) (*models.MarketListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
