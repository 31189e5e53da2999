package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsMaxMessage = 8 << 10
)

// wsReply is sent for every question frame
type wsReply struct {
	Answer interface{} `json:"answer,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// handleQAWebSocket answers one question per JSON text frame until the
// client closes the connection.
func (s *Server) handleQAWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnf("⚠️  WebSocket upgrade failed: %v", err)
		return // Upgrade already replied
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	ctx := r.Context()
	for {
		var req askRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.S().Debugf("QA WebSocket closed: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		reply := wsReply{}
		ans, err := s.qa.Ask(ctx, req.Question)
		switch {
		case err == nil:
			reply.Answer = ans
		case isQuestionError(err):
			reply.Error = err.Error()
		default:
			zap.S().Warnf("⚠️  QA WebSocket answer failed: %v", err)
			reply.Error = "Failed to answer question"
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			zap.S().Debugf("QA WebSocket write failed: %v", err)
			return
		}
	}
}
