package request_booking_deletion

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

type BookingService interface {
	RequestDeletion(ctx context.Context, bookingID, vendorID string) (*models.DeletionTicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
