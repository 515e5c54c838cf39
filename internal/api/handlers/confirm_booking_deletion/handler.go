package confirm_booking_deletion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings"
)

const (
	msgMissingVendorID     = "отсутствует ID продавца"
	msgMissingConfirmation = "не передано подтверждение удаления"
	msgInvalidConfirmation = "подтверждение удаления недействительно или истекло"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "удалить бронирование может только его владелец"
	msgStoreUnavailable    = "хранилище недоступно"
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

// Handle DELETE /api/v1/bookings/{bookingId}?confirmation=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Получаем vendorID из контекста (через middleware Auth)
	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing vendor ID")
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	token := handlers.QueryString(r, "confirmation")
	if token == nil {
		handlers.RespondBadRequest(w, msgMissingConfirmation)
		return
	}

	if err := h.service.ConfirmDeletion(r.Context(), bookingID, vendorID, *token); err != nil {
		switch {
		case errors.Is(err, bookings.ErrConfirmationInvalid):
			h.logger.Warn("DELETE /bookings/{id} - Invalid confirmation: booking_id=%s, vendor_id=%s", bookingID, vendorID)
			handlers.RespondError(w, http.StatusPreconditionFailed, msgInvalidConfirmation)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%s, vendor_id=%s", bookingID, vendorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrStore):
			h.logger.Error("DELETE /bookings/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%s, vendor_id=%s", bookingID, vendorID)
	handlers.RespondNoContent(w)
}
