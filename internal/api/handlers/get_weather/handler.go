package get_weather

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/service/forecast"
)

const msgInvalidInput = "ожидаются параметры city и date (YYYY-MM-DD)"

type Handler struct {
	service ForecastService
	logger  Logger
}

func NewHandler(service ForecastService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/weather?city=&date=
// Недоступный прогноз не ошибка: ответ 200 с available=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	city, date := query.Get("city"), query.Get("date")

	resp, err := h.service.Get(r.Context(), city, date)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /weather - Failed to get forecast: city=%s, date=%s, error=%v", city, date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
