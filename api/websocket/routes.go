package websocket

import (
	"github.com/gin-gonic/gin"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
)

func RegisterRoutes(router *gin.RouterGroup, chatAgent *agentcore.Agent, allowedOrigins []string) {
	router.GET("/chat/ws", ChatSocketHandler(chatAgent, allowedOrigins))
}
