package import_bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	importBookings "github.com/m04kA/SMC-StallCalendar/internal/usecase/import_bookings"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
)

type fakeUseCase struct {
	got  *importBookings.Request
	resp *importBookings.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *importBookings.Request) (*importBookings.Response, error) {
	f.got = req
	return f.resp, f.err
}

const csvBody = "date,marketCity,marketName,vendorId,vendorName\n2024-03-01,彰化縣,和美市場,vendor-a,攤商A\n"

func withVendor(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithVendorID(r.Context(), "sd"))
}

func TestHandle_RawBody(t *testing.T) {
	uc := &fakeUseCase{resp: &importBookings.Response{Imported: 1, Errors: []importBookings.RowError{}}}
	req := withVendor(httptest.NewRequest(http.MethodPost, "/api/v1/exchange/bookings", strings.NewReader(csvBody)))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sd", uc.got.ActorID)
	assert.Equal(t, csvBody, string(uc.got.Data))

	var body importBookings.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Imported)
}

func TestHandle_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "bookings.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	uc := &fakeUseCase{resp: &importBookings.Response{}}
	req := withVendor(httptest.NewRequest(http.MethodPost, "/api/v1/exchange/bookings", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csvBody, string(uc.got.Data))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not admin", importBookings.ErrAccessDenied, http.StatusForbidden},
		{"bad file", importBookings.ErrInvalidFile, http.StatusBadRequest},
		{"store", importBookings.ErrStore, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withVendor(httptest.NewRequest(http.MethodPost, "/api/v1/exchange/bookings", strings.NewReader(csvBody)))
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()).Handle(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_EmptyBody(t *testing.T) {
	req := withVendor(httptest.NewRequest(http.MethodPost, "/api/v1/exchange/bookings", strings.NewReader("")))
	rec := httptest.NewRecorder()
	NewHandler(&fakeUseCase{}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
