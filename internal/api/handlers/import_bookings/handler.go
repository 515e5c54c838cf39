package import_bookings

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	importBookings "github.com/m04kA/SMC-StallCalendar/internal/usecase/import_bookings"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgMissingFile      = "не передан файл для импорта"
	msgInvalidFile      = "файл не удается разобрать или в нем нет обязательных колонок"
	msgForbidden        = "импорт доступен только администратору"
	msgStoreUnavailable = "хранилище недоступно, импорт отменен"
)

// maxUploadBytes ограничение размера файла импорта
const maxUploadBytes = 10 << 20

type Handler struct {
	useCase ImportBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ImportBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/exchange/bookings
// Файл передается полем file формы multipart или телом запроса (text/csv)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	data, err := readUpload(w, r)
	if err != nil || len(data) == 0 {
		h.logger.Warn("POST /exchange/bookings - Missing file: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &importBookings.Request{ActorID: actorID, Data: data})
	if err != nil {
		switch {
		case errors.Is(err, importBookings.ErrInvalidFile):
			h.logger.Warn("POST /exchange/bookings - Invalid file: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFile)

		case errors.Is(err, importBookings.ErrAccessDenied):
			h.logger.Warn("POST /exchange/bookings - Access denied: actor_id=%s", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, importBookings.ErrStore):
			h.logger.Error("POST /exchange/bookings - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("POST /exchange/bookings - Failed to import bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /exchange/bookings - Imported=%d, skipped=%d, rowErrors=%d, actor_id=%s",
		result.Imported, result.Skipped, len(result.Errors), actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}
