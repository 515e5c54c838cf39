package update_market

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgInvalidInput       = "не указано название рынка"
	msgNotFound           = "рынок не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/markets/{marketId}
// Снимки рынка в существующих бронированиях не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	marketID := mux.Vars(r)["marketId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req models.MarketRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /markets/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	market, err := h.service.Update(r.Context(), actorID, marketID, &req)
	if err != nil {
		switch {
		case errors.Is(err, markets.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, markets.ErrMarketNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markets.ErrAccessDenied):
			h.logger.Warn("PUT /markets/{id} - Access denied: market_id=%s, actor_id=%s", marketID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markets.ErrStore):
			h.logger.Error("PUT /markets/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("PUT /markets/{id} - Failed to update market: market_id=%s, error=%v", marketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /markets/{id} - Market updated: market_id=%s, actor_id=%s", marketID, actorID)
	handlers.RespondJSON(w, http.StatusOK, market)
}
