package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
	"github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный ID продавца или пароль"
	msgInvalidInput       = "не указан ID продавца"
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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		// отсутствующий продавец и неверный пароль неразличимы для клиента
		case errors.Is(err, vendors.ErrVendorNotFound), errors.Is(err, vendors.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Login rejected: vendor_id=%s", req.VendorID)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, vendors.ErrStore):
			h.logger.Error("POST /auth/login - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /auth/login - Failed to log in: vendor_id=%s, error=%v", req.VendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Vendor logged in: vendor_id=%s", resp.Vendor.ID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
