package get_weather

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/forecast/models"
)

type ForecastService interface {
	Get(ctx context.Context, city, date string) (*models.ForecastResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
