package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
	"github.com/lc4490/rmp-rag/internal/errors"
	"github.com/lc4490/rmp-rag/internal/logger"
	"github.com/lc4490/rmp-rag/internal/metrics"
	"github.com/lc4490/rmp-rag/internal/relay"
)

// ChatHandler godoc
// @Summary Recommend professors
// @Description Retrieves and ranks professors for the last message and streams the model's reply as plain text
// @Tags chat
// @Accept json
// @Produce plain
// @Param request body []llm.Message true "Conversation, oldest first"
// @Success 200 {string} string "streamed reply"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/chat [post]
func ChatHandler(chatAgent *agentcore.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		prepared, err := chatAgent.Prepare(ctx, req.Messages)
		if err != nil {
			respondPrepareError(c, err)
			return
		}

		stream, err := chatAgent.Stream(ctx, prepared)
		if err != nil {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
			errors.UpstreamError(c, err)
			return
		}

		// headers are only committed with the first chunk
		c.Header("Content-Type", streamContentType)
		c.Status(http.StatusOK)

		written, err := relay.Copy(ctx, stream, c.Writer)
		if err == nil {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeOK).Inc()
			logger.Debug("chat reply streamed", "chunks", written, "candidates", len(prepared.Candidates))
			return
		}

		if ctx.Err() != nil {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeDisconnected).Inc()
			logger.Debug("client disconnected mid-stream", "chunks", written)
			return
		}

		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
			errors.UpstreamError(c, err)
			return
		}

		metrics.ChatRequests.WithLabelValues(metrics.OutcomeAborted).Inc()
		logger.ErrorErr(err, "completion stream failed mid-response",
			"path", c.Request.URL.Path,
			"chunks", written,
		)

		panic(http.ErrAbortHandler)
	}
}

// PreviewHandler godoc
// @Summary Preview the assembled prompt
// @Description Runs retrieval, ranking and prompt assembly without calling the completion model
// @Tags chat
// @Accept json
// @Produce json
// @Param request body []llm.Message true "Conversation, oldest first"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/chat/preview [post]
func PreviewHandler(chatAgent *agentcore.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		prepared, err := chatAgent.Prepare(c.Request.Context(), req.Messages)
		if err != nil {
			respondPrepareError(c, err)
			return
		}

		c.JSON(http.StatusOK, PreviewResponse{
			Query:      prepared.Query,
			Candidates: prepared.Candidates,
			Messages:   prepared.Messages,
		})
	}
}

func respondPrepareError(c *gin.Context, err error) {
	if agentcore.IsValidationError(err) {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		errors.BadRequest(c, err.Error(), nil)
		return
	}

	metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstream).Inc()
	errors.UpstreamError(c, err)
}
