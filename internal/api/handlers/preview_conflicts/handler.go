package preview_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreUnavailable = "хранилище недоступно"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/conflicts?marketId=&date=&excludeBookingId=
// Проверка перед сохранением формы; сама запись проверяет конфликты повторно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ConflictPreviewRequest{
		MarketID:         query.Get("marketId"),
		Date:             query.Get("date"),
		ExcludeBookingID: query.Get("excludeBookingId"),
	}

	resp, err := h.service.PreviewConflicts(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, bookings.ErrStore):
			h.logger.Error("GET /bookings/conflicts - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("GET /bookings/conflicts - Failed to check conflicts: market_id=%s, error=%v", req.MarketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
