package get_recommendations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	getRecommendations "github.com/m04kA/SMC-StallCalendar/internal/usecase/get_recommendations"
)

const (
	msgMissingVendorID  = "отсутствует ID продавца"
	msgInvalidLimit     = "limit должен быть положительным числом"
	msgStoreUnavailable = "хранилище недоступно"
)

type Handler struct {
	useCase GetRecommendationsUseCase
	logger  Logger
}

func NewHandler(useCase GetRecommendationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/recommendations?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	req := &getRecommendations.Request{VendorID: vendorID}
	if raw := handlers.QueryString(r, "limit"); raw != nil {
		limit, err := strconv.Atoi(*raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = &limit
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getRecommendations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLimit)

		case errors.Is(err, getRecommendations.ErrStore):
			h.logger.Error("GET /recommendations - Store unavailable: %v", err)
			handlers.RespondStoreUnavailable(w, msgStoreUnavailable, err)

		default:
			h.logger.Error("GET /recommendations - Failed to build recommendations: vendor_id=%s, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
