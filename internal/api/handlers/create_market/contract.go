package create_market

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

type MarketService interface {
	Create(ctx context.Context, req *models.MarketRequest) (*models.MarketResponse, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
