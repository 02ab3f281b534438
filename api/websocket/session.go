package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lc4490/rmp-rag/internal/errors"
	"github.com/lc4490/rmp-rag/internal/logger"
)

// one upgraded connection. the read pump owns all reads, writes from the
// turn loop and the ping loop are serialized through writeMu.
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	turns   chan ClientMessage
	cancel  context.CancelFunc
}

func newSession(conn *websocket.Conn, cancel context.CancelFunc) *session {
	return &session{
		conn:   conn,
		turns:  make(chan ClientMessage, maxQueuedTurns),
		cancel: cancel,
	}
}

// reads frames until the peer goes away, then cancels the session context
// so an in-flight reply stops consuming the upstream completion.
// keeps reading while a reply streams, which is how a disconnect is noticed.
func (s *session) readPump(ctx context.Context) {
	defer func() {
		s.cancel()
		close(s.turns)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}

		// any inbound frame proves the peer is alive
		s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket timing

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if s.writeError(errors.CodeBadRequest, "invalid message format") != nil {
				return
			}
			continue
		}

		select {
		case s.turns <- msg:
		case <-ctx.Done():
			return
		default:
			if s.writeError(errors.CodeBadRequest, "too many messages waiting for a reply") != nil {
				return
			}
		}
	}
}

// pings the peer so a half-open connection trips the read deadline
func (s *session) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.writeMu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.writeMu.Unlock()

			if err != nil {
				s.cancel()
				return
			}
		}
	}
}

func (s *session) writeError(code, message string) error {
	return s.writeFrame(ServerMessage{Type: TypeError, Error: message, Code: code})
}

func (s *session) writeFrame(msg ServerMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing
	return s.conn.WriteJSON(msg)
}
