package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 2 * time.Second
	maxInterval      = 30 * time.Second
	maxIntervalMilli = 30_000 // 30s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict to configured dashboard origins
}

// wsAlerts streams the open alerts of one aquarium. Ownership is checked
// before the upgrade so HTTP clients get a proper 403/404.
//
// @Summary  Stream open alerts over a websocket
// @Tags     alerts
// @Param    aquarium_id   query  int     true   "aquarium id"
// @Param    access_token  query  string  false  "token for clients that cannot send headers"
// @Param    interval      query  string  false  "poll interval, e.g. 2s (max 30s)"
// @Router   /api/v1/ws/alerts [get]
// @Security BearerAuth
func (h *Handler) wsAlerts(c *gin.Context) {
	aqID, ok := aquariumIDQuery(c)
	if !ok {
		return
	}
	uid := userID(c)
	f := service.AlertFilter{AquariumID: aqID, Resolved: new(bool)}
	if _, err := h.services.Alerts.List(c.Request.Context(), uid, f); err != nil {
		h.writeError(c, "ws_alerts_denied", err)
		return
	}

	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	send := func() error {
		return h.sendAlerts(c.Request.Context(), conn, uid, f)
	}

	// Send initial snapshot immediately.
	if err := send(); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := send(); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendAlerts writes the current open alerts. A failed lookup is reported to
// the client as an error envelope and closes the stream.
func (h *Handler) sendAlerts(ctx context.Context, conn *websocket.Conn, uid int64, f service.AlertFilter) error {
	list, err := h.services.Alerts.List(ctx, uid, f)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_list_alerts_failed", "err", err, "aquarium_id", f.AquariumID)
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: "failed to load alerts"})
		return err
	}
	if list == nil {
		list = []models.Alert{}
	}
	return conn.WriteJSON(wsEnvelope{Type: "alerts", Data: list})
}
