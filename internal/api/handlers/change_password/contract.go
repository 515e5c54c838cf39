package change_password

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

type VendorService interface {
	ChangePassword(ctx context.Context, actorID, vendorID string, req *models.ChangePasswordRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
