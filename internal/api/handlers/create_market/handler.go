package create_market

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не указано название рынка"
	msgStoreUnavailable   = "хранилище недоступно"
)

type Handler struct {
	service MarketService
	logger  Logger
}

func NewHandler(service MarketService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/markets
// Рынок с тем же названием и городом не дублируется: возвращается существующий (200)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.MarketRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /markets - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	market, created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, markets.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, markets.ErrStore):
			h.logger.Error("POST /markets - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /markets - Failed to create market: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.logger.Info("POST /markets - Market created: market_id=%s", market.ID)
	}
	handlers.RespondJSON(w, status, market)
}
