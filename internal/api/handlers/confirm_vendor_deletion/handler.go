package confirm_vendor_deletion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
)

const (
	msgMissingVendorID     = "отсутствует ID продавца"
	msgMissingConfirmation = "не передано подтверждение удаления"
	msgInvalidConfirmation = "подтверждение удаления недействительно или истекло"
	msgNotFound            = "продавец не найден"
	msgForbidden           = "доступ запрещен"
	msgProtected           = "основного администратора удалить нельзя"
	msgStoreUnavailable    = "хранилище недоступно"
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

// Handle DELETE /api/v1/vendors/{vendorId}?confirmation=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	token := handlers.QueryString(r, "confirmation")
	if token == nil {
		handlers.RespondBadRequest(w, msgMissingConfirmation)
		return
	}

	if err := h.service.ConfirmDeletion(r.Context(), actorID, vendorID, *token); err != nil {
		switch {
		case errors.Is(err, vendors.ErrConfirmationInvalid):
			h.logger.Warn("DELETE /vendors/{id} - Invalid confirmation: vendor_id=%s, actor_id=%s", vendorID, actorID)
			handlers.RespondError(w, http.StatusPreconditionFailed, msgInvalidConfirmation)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrProtectedVendor):
			handlers.RespondForbidden(w, msgProtected)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("DELETE /vendors/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("DELETE /vendors/{id} - Failed to delete vendor: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vendors/{id} - Vendor deleted: vendor_id=%s, actor_id=%s", vendorID, actorID)
	handlers.RespondNoContent(w)
}
