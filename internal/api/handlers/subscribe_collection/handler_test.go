package subscribe_collection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/live"
	"github.com/m04kA/SMC-StallCalendar/internal/service/collections"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
)

type countingLoader struct{ loads atomic.Int32 }

func (l *countingLoader) Load(_ context.Context, c domain.Collection) (*collections.Snapshot, error) {
	n := l.loads.Add(1)
	return &collections.Snapshot{Collection: c, Data: n}, nil
}

type staticTokens struct{}

func (staticTokens) Parse(token string) (string, error) { return token, nil }

type message struct {
	Collection string `json:"collection"`
	Data       int    `json:"data"`
}

func newServer(t *testing.T, hub *live.Hub, loader SnapshotLoader) *httptest.Server {
	t.Helper()
	h := NewHandler(hub, loader, []string{"*"}, logger.NewNop())

	r := mux.NewRouter()
	r.Use(middleware.Auth(staticTokens{}))
	r.HandleFunc("/live/{collection}", h.Handle)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHandle_SnapshotThenUpdates(t *testing.T) {
	hub := live.NewHub()
	loader := &countingLoader{}
	conn := dial(t, newServer(t, hub, loader), "/live/bookings?token=vendor-a")

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "bookings", first.Collection)
	assert.Equal(t, 1, first.Data)

	require.Eventually(t, func() bool { return hub.Subscribers(domain.CollectionBookings) == 1 },
		time.Second, 10*time.Millisecond)
	hub.Publish(domain.CollectionMarkets) // чужая коллекция не доставляется
	hub.Publish(domain.CollectionBookings)

	var second message
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, 2, second.Data)
}

func TestHandle_UnsubscribesOnDisconnect(t *testing.T) {
	hub := live.NewHub()
	conn := dial(t, newServer(t, hub, &countingLoader{}), "/live/vendors?token=vendor-a")

	var first message
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Subscribers(domain.CollectionVendors) == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestHandle_UnknownCollection(t *testing.T) {
	srv := newServer(t, live.NewHub(), &countingLoader{})

	resp, err := http.Get(srv.URL + "/live/users?token=vendor-a")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
