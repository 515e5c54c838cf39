package create_vendor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgInvalidInput       = "некорректные данные продавца"
	msgVendorExists       = "продавец с таким ID уже существует"
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

// Handle POST /api/v1/vendors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req models.CreateVendorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vendor, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			h.logger.Warn("POST /vendors - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, vendors.ErrAccessDenied), errors.Is(err, vendors.ErrVendorNotFound):
			h.logger.Warn("POST /vendors - Access denied: actor_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrVendorExists):
			handlers.RespondError(w, http.StatusConflict, msgVendorExists)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("POST /vendors - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /vendors - Failed to create vendor: actor_id=%s, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors - Vendor created: vendor_id=%s, actor_id=%s", vendor.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, vendor)
}
