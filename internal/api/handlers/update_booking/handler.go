package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-StallCalendar/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgMarketRequired     = "выберите рынок"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgMarketNotFound     = "рынок не найден"
	msgForbidden          = "изменить бронирование может только его владелец"
	msgBookingConflict    = "на этом рынке уже есть бронирование в пределах 7 дней"
	msgConcurrent         = "данные изменились параллельно, отправьте запрос повторно"
	msgStoreUnavailable   = "хранилище недоступно, запрос можно повторить"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(vendorID, bookingID))
	if err != nil {
		var conflictErr *updateBooking.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PUT /bookings/{id} - Booking conflict: booking_id=%s, conflicts=%d", bookingID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, msgBookingConflict, models.FromDomainBookings(conflictErr.Conflicts))

		case errors.Is(err, updateBooking.ErrConcurrentModification):
			handlers.RespondError(w, http.StatusConflict, msgConcurrent)

		case errors.Is(err, updateBooking.ErrMarketRequired):
			handlers.RespondBadRequest(w, msgMarketRequired)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrMarketNotFound):
			handlers.RespondNotFound(w, msgMarketNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%s, vendor_id=%s", bookingID, vendorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrStore):
			h.logger.Error("PUT /bookings/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%s, vendor_id=%s", bookingID, vendorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
