package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/api/metrics"
	"github.com/painelfacil/painel-api/internal/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandler bridges the in-process hub to WebSocket clients. Each
// connection holds exactly one subscription, taken on upgrade and released
// when the connection drops.
type StreamHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewStreamHandler(hub *realtime.Hub, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The route guard has already vetted the session; cross-origin
			// dashboards are a supported deployment.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve upgrades the request and streams hub events to the client as JSON
// frames until either side closes.
func (h *StreamHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	sub := h.hub.Subscribe(0)
	metrics.SocketClients.Inc()
	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("push client connected")

	closed := make(chan struct{})
	go h.readLoop(conn, closed)
	h.writeLoop(conn, sub, closed)

	sub.Close()
	metrics.SocketClients.Dec()
	_ = conn.Close()
	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("push client disconnected")
	return nil
}

// readLoop drains client frames so close and pong control messages are
// processed. Clients never send data frames; anything received is ignored.
func (h *StreamHandler) readLoop(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

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

func (h *StreamHandler) writeLoop(conn *websocket.Conn, sub *realtime.Subscription, closed <-chan struct{}) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
