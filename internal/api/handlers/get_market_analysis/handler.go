package get_market_analysis

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/assistant"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "рынок не найден"
	msgForbidden        = "доступ запрещен"
	msgRateLimited      = "слишком много запросов, попробуйте позже"
	msgExternalService  = "сервис генерации текста недоступен"
	msgStoreUnavailable = "хранилище недоступно"
)

type Handler struct {
	service AssistantService
	logger  Logger
}

func NewHandler(service AssistantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/markets/{marketId}/analysis
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	marketID := mux.Vars(r)["marketId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	resp, err := h.service.MarketAnalysis(r.Context(), actorID, marketID)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrMarketNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, assistant.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assistant.ErrRateLimited):
			h.logger.Warn("GET /markets/{id}/analysis - Rate limited: actor_id=%s", actorID)
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)

		case errors.Is(err, assistant.ErrExternalService):
			h.logger.Error("GET /markets/{id}/analysis - Text generation failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgExternalService)

		case errors.Is(err, assistant.ErrStore):
			h.logger.Error("GET /markets/{id}/analysis - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("GET /markets/{id}/analysis - Failed to analyze market: market_id=%s, error=%v", marketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
