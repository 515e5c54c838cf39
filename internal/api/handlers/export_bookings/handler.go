package export_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

const (
	msgMissingVendorID   = "отсутствует ID продавца"
	msgUnsupportedFormat = "поддерживаются форматы csv и xlsx"
	msgForbidden         = "выгрузка доступна только администратору"
	msgStoreUnavailable  = "хранилище недоступно"
)

type Handler struct {
	service ExchangeService
	logger  Logger
}

func NewHandler(service ExchangeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/exchange/bookings?format=csv|xlsx
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	format := models.FormatCSV
	if raw := handlers.QueryString(r, "format"); raw != nil {
		format = models.Format(strings.ToLower(*raw))
	}

	file, err := h.service.Export(r.Context(), actorID, format)
	if err != nil {
		switch {
		case errors.Is(err, exchange.ErrUnsupportedFormat):
			handlers.RespondBadRequest(w, msgUnsupportedFormat)

		case errors.Is(err, exchange.ErrAccessDenied):
			h.logger.Warn("GET /exchange/bookings - Access denied: actor_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, exchange.ErrStore):
			h.logger.Error("GET /exchange/bookings - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("GET /exchange/bookings - Failed to export bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /exchange/bookings - Exported %s (%d bytes) for actor_id=%s", file.Filename, len(file.Data), actorID)
	handlers.RespondFile(w, file.Filename, file.ContentType, file.Data)
}
