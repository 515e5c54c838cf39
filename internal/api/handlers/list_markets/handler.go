package list_markets

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets"
)

const msgStoreUnavailable = "хранилище недоступно"

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

// Handle GET /api/v1/markets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, markets.ErrStore) {
			h.logger.Error("GET /markets - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)
			return
		}
		h.logger.Error("GET /markets - Failed to list markets: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
