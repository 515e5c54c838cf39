package export_bookings

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

type ExchangeService interface {
	Export(ctx context.Context, actorID string, format models.Format) (*models.ExportFile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
