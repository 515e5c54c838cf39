package request_vendor_deletion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "продавец не найден"
	msgForbidden        = "доступ запрещен"
	msgProtected        = "основного администратора удалить нельзя"
	msgStoreUnavailable = "хранилище недоступно"
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

// Handle POST /api/v1/vendors/{vendorId}/deletion
// Первый шаг удаления: выдает подтверждение с ограниченным сроком действия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	ticket, err := h.service.RequestDeletion(r.Context(), actorID, vendorID)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("POST /vendors/{id}/deletion - Access denied: vendor_id=%s, actor_id=%s", vendorID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrProtectedVendor):
			handlers.RespondForbidden(w, msgProtected)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("POST /vendors/{id}/deletion - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /vendors/{id}/deletion - Failed to request deletion: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, ticket)
}
