package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "write a promo", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Fresh fruit today!  "}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "test-model", "k", time.Second, nopLogger{})
	text, err := c.Generate(context.Background(), "write a promo")
	require.NoError(t, err)
	assert.Equal(t, "Fresh fruit today!", text)
}

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "m", "k", time.Second, nopLogger{})
}

func TestClient_GenerateErrors(t *testing.T) {
	_, err := serve(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"overloaded"}}`).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "overloaded")

	_, err = serve(t, http.StatusOK, `{"candidates":[]}`).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = serve(t, http.StatusOK, `not json`).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = NewClient("http://127.0.0.1:1", "m", "", time.Second, nopLogger{}).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
