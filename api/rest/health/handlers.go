package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "rmp-rag"
	version     = "1.0.0"
)

// returns the server health status along with the configured collaborators
func Handler(llmProvider, vectorBackend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:        "healthy",
			Service:       serviceName,
			Version:       version,
			LLMProvider:   llmProvider,
			VectorBackend: vectorBackend,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
