package get_vendor_sales

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

type BookingService interface {
	Sales(ctx context.Context, req *models.SalesRequest) (*models.SalesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
