package delete_announcement

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgNotFound         = "объявление не найдено"
	msgForbidden        = "доступ запрещен"
	msgStoreUnavailable = "хранилище недоступно"
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

// Handle DELETE /api/v1/announcements/{announcementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["announcementId"]

	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	if err := h.service.Delete(r.Context(), actorID, id); err != nil {
		switch {
		case errors.Is(err, announcements.ErrAnnouncementNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, announcements.ErrAccessDenied):
			h.logger.Warn("DELETE /announcements/{id} - Access denied: id=%s, actor_id=%s", id, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, announcements.ErrStore):
			h.logger.Error("DELETE /announcements/{id} - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("DELETE /announcements/{id} - Failed to delete announcement: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /announcements/{id} - Announcement deleted: id=%s, actor_id=%s", id, actorID)
	handlers.RespondNoContent(w)
}
