package get_latest_announcement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements"
)

const msgStoreUnavailable = "хранилище недоступно"

type Handler struct {
	service AnnouncementService
	logger  Logger
}

func NewHandler(service AnnouncementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/announcements/latest
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Latest(r.Context())
	if err != nil {
		if errors.Is(err, announcements.ErrStore) {
			h.logger.Error("GET /announcements/latest - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)
			return
		}
		h.logger.Error("GET /announcements/latest - Failed to get announcement: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
