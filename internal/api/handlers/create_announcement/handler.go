package create_announcement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements"
	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingVendorID    = "отсутствует ID продавца"
	msgInvalidInput       = "текст объявления пуст"
	msgForbidden          = "доступ запрещен"
	msgStoreUnavailable   = "хранилище недоступно"
)

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

// Handle POST /api/v1/announcements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	var req models.CreateAnnouncementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /announcements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	announcement, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, announcements.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, announcements.ErrAccessDenied):
			h.logger.Warn("POST /announcements - Access denied: actor_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, announcements.ErrStore):
			h.logger.Error("POST /announcements - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /announcements - Failed to create announcement: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /announcements - Announcement published: id=%s, actor_id=%s", announcement.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, announcement)
}
