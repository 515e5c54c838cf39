package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	createBooking "github.com/m04kA/SMC-StallCalendar/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, body string, vendorID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if vendorID != "" {
		req = req.WithContext(middleware.WithVendorID(req.Context(), vendorID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{ID: "b1", Date: "2024-03-01", Market: domain.MarketSnapshot{ID: "market1"}},
	}}

	rec := serve(t, uc, `{"marketId":"market1","date":"2024-03-01","allowConflict":true}`, "vendor-a")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "vendor-a", uc.got.VendorID)
	assert.True(t, uc.got.AllowConflict)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b1", body.Booking.ID)
	assert.Empty(t, body.Warnings)
}

func TestHandle_ConflictCarriesBookings(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.ConflictError{Conflicts: []*domain.Booking{
		{ID: "b0", Date: "2024-03-05", Vendor: domain.VendorSnapshot{ID: "vendor-b"}},
	}}}

	rec := serve(t, uc, `{"marketId":"market1","date":"2024-03-01"}`, "vendor-a")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		handlers.ErrorResponse
		Details []struct {
			ID string `json:"id"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "b0", body.Details[0].ID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"market required", createBooking.ErrMarketRequired, http.StatusBadRequest},
		{"invalid date", fmt.Errorf("%w: bad", createBooking.ErrInvalidDate), http.StatusBadRequest},
		{"market not found", createBooking.ErrMarketNotFound, http.StatusNotFound},
		{"concurrent", createBooking.ErrConcurrentModification, http.StatusConflict},
		{"store", fmt.Errorf("%w: disk full", createBooking.ErrStore), http.StatusServiceUnavailable},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, `{"marketId":"market1","date":"2024-03-01"}`, "vendor-a")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_RequiresSession(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
