package get_latest_announcement

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements/models"
)

type AnnouncementService interface {
	Latest(ctx context.Context) (*models.LatestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
