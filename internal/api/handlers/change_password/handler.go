package change_password

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgInvalidPassword    = "пароль слишком короткий"
	msgWrongPassword      = "текущий пароль указан неверно"
	msgNotFound           = "продавец не найден"
	msgForbidden          = "доступ запрещен"
	msgStoreUnavailable   = "хранилище недоступно"
)

type Handler struct {
	service VendorService
	logger  Logger
}

func NewHandler(service VendorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/vendors/{vendorId}/password
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req models.ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vendors/{id}/password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ChangePassword(r.Context(), actorID, vendorID, &req); err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPassword)

		case errors.Is(err, vendors.ErrInvalidCredentials):
			h.logger.Warn("PUT /vendors/{id}/password - Wrong current password: vendor_id=%s", vendorID)
			handlers.RespondForbidden(w, msgWrongPassword)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("PUT /vendors/{id}/password - Access denied: vendor_id=%s, actor_id=%s", vendorID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("PUT /vendors/{id}/password - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("PUT /vendors/{id}/password - Failed to change password: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vendors/{id}/password - Password changed: vendor_id=%s, actor_id=%s", vendorID, actorID)
	handlers.RespondNoContent(w)
}
