package errors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lc4490/rmp-rag/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for failures that end the request
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//   - Once a streamed body has started, the status can no longer change: log the
//     error and abort the connection instead (see Recovery)
//
// For services/retrievers/providers:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeServerError     = "server_error"
	CodeBadRequest      = "bad_request"
	CodeUpstreamError   = "upstream_error"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: message,
		Code:  CodeNotFound,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error: message,
		Code:  CodeBadRequest,
	}

	// add details if error provided
	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for malformed bodies
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)

		if strings.Contains(err.Error(), "json") || strings.Contains(err.Error(), "EOF") {
			message = "request body must be a JSON conversation"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Code:    CodeValidationError,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Code:    CodeServerError,
		Details: sanitizeError(err),
	})
}

// returns a 500 for a failed embedding, search or completion call.
// the error text itself is the message so callers see what broke.
func UpstreamError(c *gin.Context, err error) {
	logger.ErrorErr(err, "upstream call failed",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", classifyError(err).category,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: sanitizeError(err),
		Code:  CodeUpstreamError,
	})
}

// returns the client-safe text of err for transports that do not go through gin
func Sanitize(err error) string {
	return sanitizeError(err)
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return classifyError(err).sanitized
}

// recovers handler panics. before any body byte is written the client gets a
// 500 JSON body; afterwards the connection is aborted so a truncated stream is
// never mistaken for a complete one. http.ErrAbortHandler is re-raised for
// net/http to close the connection quietly.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && err == http.ErrAbortHandler { //nolint:errorlint // sentinel identity
				panic(rec)
			}

			logger.Error("panic recovered",
				"panic", rec,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)

			if c.Writer.Written() {
				panic(http.ErrAbortHandler)
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Error: "internal server error",
				Code:  CodeServerError,
			})
		}()

		c.Next()
	}
}
