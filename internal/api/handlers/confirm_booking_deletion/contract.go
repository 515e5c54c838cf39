package confirm_booking_deletion

import "context"

type BookingService interface {
	ConfirmDeletion(ctx context.Context, bookingID, vendorID, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
