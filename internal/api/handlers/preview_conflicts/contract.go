package preview_conflicts

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

type BookingService interface {
	PreviewConflicts(ctx context.Context, req *models.ConflictPreviewRequest) (*models.ConflictPreviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
