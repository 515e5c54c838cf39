package update_vendor

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
	msgInvalidInput       = "некорректные данные продавца"
	msgNotFound           = "продавец не найден"
	msgForbidden          = "доступ запрещен"
	msgProtected          = "нельзя снять права с основного администратора"
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

// Handle PATCH /api/v1/vendors/{vendorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req models.UpdateVendorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /vendors/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vendor, err := h.service.UpdateProfile(r.Context(), actorID, vendorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("PATCH /vendors/{id} - Access denied: vendor_id=%s, actor_id=%s", vendorID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrProtectedVendor):
			handlers.RespondForbidden(w, msgProtected)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("PATCH /vendors/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("PATCH /vendors/{id} - Failed to update vendor: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /vendors/{id} - Vendor updated: vendor_id=%s, actor_id=%s", vendorID, actorID)
	handlers.RespondJSON(w, http.StatusOK, vendor)
}
