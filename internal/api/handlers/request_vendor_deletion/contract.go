package request_vendor_deletion

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

type VendorService interface {
	RequestDeletion(ctx context.Context, actorID, vendorID string) (*models.DeletionTicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
