package get_market_analysis

import (
	"context"

	"github.com/m04kA/SMC-StallCalendar/internal/service/assistant/models"
)

type AssistantService interface {
	MarketAnalysis(ctx context.Context, actorID, marketID string) (*models.GeneratedTextResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
