package websocket

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
	"github.com/lc4490/rmp-rag/internal/errors"
	"github.com/lc4490/rmp-rag/internal/logger"
	"github.com/lc4490/rmp-rag/internal/metrics"
	"github.com/lc4490/rmp-rag/internal/relay"
)

// ChatSocketHandler godoc
// @Summary Chat over a WebSocket
// @Description Each {"type":"chat","messages":[...]} frame is answered with chunk frames followed by done, or an error frame
// @Tags chat
// @Router /api/chat/ws [get]
func ChatSocketHandler(chatAgent *agentcore.Agent, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(c *gin.Context) {
		// Upgrade replies with an HTTP error itself on failure
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close() //nolint:errcheck

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// a hijacked request context is not cancelled when the peer leaves,
		// the read pump cancels ctx instead
		sess := newSession(conn, cancel)
		go sess.readPump(ctx)
		go sess.pingLoop(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sess.turns:
				if !ok {
					return
				}

				if err := serveTurn(ctx, sess, chatAgent, msg); err != nil {
					logger.Debug("websocket turn ended", "error", err)
					return
				}
			}
		}
	}
}

// answers one chat frame. only a lost peer is returned; pipeline failures
// are reported to the client as error frames.
func serveTurn(ctx context.Context, sess *session, chatAgent *agentcore.Agent, msg ClientMessage) error {
	if msg.Type != "" && msg.Type != TypeChat {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		return sess.writeError(errors.CodeBadRequest, fmt.Sprintf("unsupported message type %q", msg.Type))
	}

	prepared, err := chatAgent.Prepare(ctx, msg.Messages)
	if err != nil {
		if agentcore.IsValidationError(err) {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
			return sess.writeError(errors.CodeBadRequest, err.Error())
		}

		metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
		logger.ErrorErr(err, "websocket chat preparation failed")
		return sess.writeError(errors.CodeUpstreamError, errors.Sanitize(err))
	}

	stream, err := chatAgent.Stream(ctx, prepared)
	if err != nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
		logger.ErrorErr(err, "websocket completion failed")
		return sess.writeError(errors.CodeUpstreamError, errors.Sanitize(err))
	}

	w := &frameWriter{session: sess}

	written, err := relay.Copy(ctx, stream, w)
	if w.err != nil || ctx.Err() != nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeDisconnected).Inc()
		logger.Debug("websocket client disconnected mid-stream", "chunks", written)

		if w.err != nil {
			return w.err
		}

		return ctx.Err()
	}

	if err != nil {
		// frames already sent stay valid, the error frame marks the reply as cut short
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeAborted).Inc()
		logger.ErrorErr(err, "websocket completion stream failed", "chunks", written)
		return sess.writeError(errors.CodeUpstreamError, errors.Sanitize(err))
	}

	metrics.ChatRequests.WithLabelValues(metrics.OutcomeOK).Inc()

	return sess.writeFrame(ServerMessage{Type: TypeDone})
}
