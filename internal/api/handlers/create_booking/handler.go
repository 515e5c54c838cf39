package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-StallCalendar/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgMarketRequired     = "выберите рынок"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgVendorNotFound     = "продавец не найден"
	msgMarketNotFound     = "рынок не найден"
	msgBookingConflict    = "на этом рынке уже есть бронирование в пределах 7 дней"
	msgConcurrent         = "данные изменились параллельно, отправьте запрос повторно"
	msgStoreUnavailable   = "хранилище недоступно, запрос можно повторить"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(vendorID))
	if err != nil {
		var conflictErr *createBooking.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Booking conflict: vendor_id=%s, market_id=%s, date=%s, conflicts=%d",
				vendorID, req.MarketID, req.Date, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, msgBookingConflict, models.FromDomainBookings(conflictErr.Conflicts))

		case errors.Is(err, createBooking.ErrConcurrentModification):
			h.logger.Warn("POST /bookings - Concurrent modification: vendor_id=%s, market_id=%s", vendorID, req.MarketID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrent)

		case errors.Is(err, createBooking.ErrMarketRequired):
			handlers.RespondBadRequest(w, msgMarketRequired)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /bookings - Vendor not found: vendor_id=%s", vendorID)
			handlers.RespondForbidden(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrMarketNotFound):
			h.logger.Warn("POST /bookings - Market not found: market_id=%s", req.MarketID)
			handlers.RespondNotFound(w, msgMarketNotFound)

		case errors.Is(err, createBooking.ErrStore):
			h.logger.Error("POST /bookings - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: vendor_id=%s, market_id=%s, error=%v",
				vendorID, req.MarketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, vendor_id=%s, market_id=%s",
		result.Booking.ID, vendorID, req.MarketID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
