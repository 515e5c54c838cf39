package get_vendor_sales

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgInvalidRange     = "некорректный период, ожидаются даты YYYY-MM-DD и from <= to"
	msgNotFound         = "продавец не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/vendors/{vendorId}/sales?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	query := r.URL.Query()
	summary, err := h.service.Sales(r.Context(), &models.SalesRequest{
		ActorID:  actorID,
		VendorID: vendorID,
		From:     query.Get("from"),
		To:       query.Get("to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /vendors/{id}/sales - Access denied: vendor_id=%s, actor_id=%s", vendorID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrStore):
			h.logger.Error("GET /vendors/{id}/sales - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("GET /vendors/{id}/sales - Failed to summarize sales: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
