package update_market

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

type MarketService interface {
	Update(ctx context.Context, actorID, id string, req *models.MarketRequest) (*models.MarketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
