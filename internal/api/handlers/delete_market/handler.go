package delete_market

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "рынок не найден"
	msgForbidden        = "доступ запрещен"
	msgStoreUnavailable = "хранилище недоступно"
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

// Handle DELETE /api/v1/markets/{marketId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	marketID := mux.Vars(r)["marketId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	if err := h.service.Delete(r.Context(), actorID, marketID); err != nil {
		switch {
		case errors.Is(err, markets.ErrMarketNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markets.ErrAccessDenied):
			h.logger.Warn("DELETE /markets/{id} - Access denied: market_id=%s, actor_id=%s", marketID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markets.ErrStore):
			h.logger.Error("DELETE /markets/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("DELETE /markets/{id} - Failed to delete market: market_id=%s, error=%v", marketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /markets/{id} - Market deleted: market_id=%s, actor_id=%s", marketID, actorID)
	handlers.RespondNoContent(w)
}
