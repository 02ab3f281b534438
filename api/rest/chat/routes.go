package chat

import (
	"github.com/gin-gonic/gin"

	agentcore "github.com/lc4490/rmp-rag/internal/agent"
)

func RegisterRoutes(router *gin.RouterGroup, chatAgent *agentcore.Agent) {
	chatGroup := router.Group("/chat")
	{
		chatGroup.POST("", ChatHandler(chatAgent))
		chatGroup.POST("/preview", PreviewHandler(chatAgent))
	}
}
