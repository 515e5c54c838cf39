package request_booking_deletion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "удалить бронирование может только его владелец"
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

// Handle POST /api/v1/bookings/{bookingId}/deletion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	ticket, err := h.service.RequestDeletion(r.Context(), bookingID, vendorID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/deletion - Access denied: booking_id=%s, vendor_id=%s", bookingID, vendorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrStore):
			h.logger.Error("POST /bookings/{id}/deletion - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /bookings/{id}/deletion - Failed to request deletion: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, ticket)
}
