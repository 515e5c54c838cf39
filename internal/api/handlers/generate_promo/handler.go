package generate_promo

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/assistant"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgRateLimited      = "слишком много запросов, попробуйте позже"
	msgExternalService  = "сервис генерации текста недоступен"
	msgStoreUnavailable = "хранилище недоступно"
)

type Handler struct {
	service AssistantService
	logger  Logger
}

func NewHandler(service AssistantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/promo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	resp, err := h.service.Promo(r.Context(), actorID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, assistant.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/promo - Access denied: booking_id=%s, actor_id=%s", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assistant.ErrRateLimited):
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)

		case errors.Is(err, assistant.ErrExternalService):
			h.logger.Error("POST /bookings/{id}/promo - Text generation failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgExternalService)

		case errors.Is(err, assistant.ErrStore):
			h.logger.Error("POST /bookings/{id}/promo - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /bookings/{id}/promo - Failed to generate promo: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/promo - Promo generated: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
