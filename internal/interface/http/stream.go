package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yanqian/skycast/internal/domain/widget"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12
)

type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func newUpgrader(allowed []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowed) == 0 {
				return true
			}
			for _, candidate := range allowed {
				if candidate == "*" || strings.EqualFold(candidate, origin) {
					return true
				}
			}
			return false
		},
	}
}

// Stream pushes every state transition of a session over a WebSocket,
// starting with the current state.
func (h *Handler) Stream(allowedOrigins []string) gin.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		// Subscribe before reading the current state so no transition in
		// between is lost.
		updates, cancel := h.hub.Subscribe(sessionID)
		defer cancel()

		current, err := h.widgetSvc.State(c.Request.Context(), sessionID)
		if err != nil {
			abortWithError(c, toHTTPError(err))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", "session", sessionID, "error", err)
			return
		}
		defer func() { _ = conn.Close() }()
		h.logger.Info("ws stream opened", "session", sessionID, "subscribers", h.hub.Subscribers(sessionID))

		conn.SetReadLimit(maxMsgSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		done := make(chan struct{})
		go h.startReader(conn, sessionID, done)

		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()

		if err := sendState(conn, current); err != nil {
			h.logger.Info("ws initial write failed", "session", sessionID, "error", err)
			return
		}
		cursor := newStreamCursor(current)

		for {
			select {
			case <-done:
				return
			case <-c.Request.Context().Done():
				return
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					h.logger.Info("ws ping failed", "session", sessionID, "error", err)
					return
				}
			case st, ok := <-updates:
				if !ok {
					return
				}
				if !cursor.advance(st) {
					continue
				}
				if err := sendState(conn, st); err != nil {
					h.logger.Info("ws write failed", "session", sessionID, "error", err)
					return
				}
			}
		}
	}
}

// streamCursor remembers the last state sent so that transitions buffered
// before the initial state was read are not replayed behind it.
type streamCursor struct {
	queryID uint64
	rank    int
}

func newStreamCursor(st widget.State) *streamCursor {
	return &streamCursor{queryID: st.QueryID, rank: phaseRank(st.Phase)}
}

// advance reports whether st is newer than the last state sent and records it.
func (c *streamCursor) advance(st widget.State) bool {
	rank := phaseRank(st.Phase)
	if st.QueryID < c.queryID || (st.QueryID == c.queryID && rank <= c.rank) {
		return false
	}
	c.queryID, c.rank = st.QueryID, rank
	return true
}

// phaseRank orders the phases a single query moves through.
func phaseRank(p widget.Phase) int {
	switch p {
	case widget.PhaseIdle:
		return 0
	case widget.PhaseLoading:
		return 1
	default:
		return 2
	}
}

// startReader drains incoming frames to process control messages and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, sessionID string, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Debug("ws read closed", "session", sessionID, "error", err)
			return
		}
	}
}

func sendState(conn *websocket.Conn, st widget.State) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "state", Data: st})
}
