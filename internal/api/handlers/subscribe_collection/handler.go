package subscribe_collection

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

const (
	msgMissingVendorID   = "отсутствует ID продавца"
	msgUnknownCollection = "неизвестная коллекция"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Handler struct {
	hub     Subscriber
	loader  SnapshotLoader
	origins []string
	logger  Logger

	upgrader websocket.Upgrader
}

// NewHandler origins список разрешенных Origin; "*" разрешает любой
func NewHandler(hub Subscriber, loader SnapshotLoader, origins []string, logger Logger) *Handler {
	h := &Handler{
		hub:     hub,
		loader:  loader,
		origins: origins,
		logger:  logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Handle GET /api/v1/live/{collection}
// После подключения клиент получает полный снимок коллекции и новый снимок после каждого изменения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	collection, ok := domain.ParseCollection(mux.Vars(r)["collection"])
	if !ok {
		handlers.RespondNotFound(w, msgUnknownCollection)
		return
	}

	vendorID, ok := middleware.GetVendorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendorID)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /live/{collection} - Upgrade failed: vendor_id=%s, error=%v", vendorID, err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(collection)
	defer sub.Close()

	h.logger.Info("GET /live/%s - Subscribed: vendor_id=%s", collection, vendorID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.readPump(conn, cancel)

	if err := h.push(ctx, conn, collection); err != nil {
		h.logger.Warn("GET /live/%s - Initial snapshot failed: vendor_id=%s, error=%v", collection, vendorID, err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /live/%s - Unsubscribed: vendor_id=%s", collection, vendorID)
			return

		case _, open := <-sub.C():
			if !open {
				return
			}
			if err := h.push(ctx, conn, collection); err != nil {
				h.logger.Warn("GET /live/%s - Push failed: vendor_id=%s, error=%v", collection, vendorID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push отправляет полный снимок коллекции
func (h *Handler) push(ctx context.Context, conn *websocket.Conn, collection domain.Collection) error {
	snapshot, err := h.loader.Load(ctx, collection)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snapshot)
}

// readPump читает входящие кадры до разрыва соединения
// Клиент ничего не присылает, кроме pong и close
func (h *Handler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
