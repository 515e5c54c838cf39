package generate_promo

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/assistant/models"
)

type AssistantService interface {
	Promo(ctx context.Context, actorID, bookingID string) (*models.GeneratedTextResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
