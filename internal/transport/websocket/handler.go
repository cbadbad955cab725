package websocket

import (
	"encoding/json"
	"net/http"
	"slices"

	"horizonx-top/internal/config"
	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
	"horizonx-top/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
)

type ViewSource interface {
	Read() domain.View
}

type Handler struct {
	hub      *Hub
	source   ViewSource
	upgrader websocket.Upgrader
	log      logger.Logger
	secret   string
}

func NewHandler(hub *Hub, source ViewSource, log logger.Logger, cfg *config.Config) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")

			// local tools send no Origin header
			if origin == "" {
				return true
			}

			if !slices.Contains(cfg.AllowedOrigins, origin) {
				log.Warn("websocket origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		source:   source,
		upgrader: upgrader,
		log:      log,
		secret:   cfg.JWTSecret,
	}
}

// Serve upgrades the connection, subscribes the client to the metrics
// channel and sends it the current view before any broadcast.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		if err := middleware.VerifyToken(h.secret, middleware.BearerToken(r)); err != nil {
			h.log.Warn("jwt verification failed", "error", err)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)

	initial, err := json.Marshal(domain.WsInternalEvent{
		Channel: domain.WsChannelMetrics,
		Event:   domain.WsEventMetricsUpdated,
		Payload: h.source.Read(),
	})
	if err == nil {
		client.send <- initial
	}

	if !h.hub.Register(client) {
		conn.Close()
		return
	}
	h.hub.Subscribe(client, domain.WsChannelMetrics)

	go client.writePump()
	go client.readPump()

	h.log.Info("client connected", "id", client.ID, "remote_addr", conn.RemoteAddr())
}
