package main

import (
	"github.com/gin-gonic/gin"

	"github.com/lc4490/rmp-rag/api/rest/chat"
	"github.com/lc4490/rmp-rag/api/rest/docs"
	"github.com/lc4490/rmp-rag/api/rest/health"
	"github.com/lc4490/rmp-rag/api/websocket"
	"github.com/lc4490/rmp-rag/internal/errors"
	"github.com/lc4490/rmp-rag/internal/metrics"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(errors.Recovery())
	router.Use(RequestLogger())
	router.Use(CORSMiddleware(server.config.CORSAllowedOrigins))

	router.GET("/health", health.Handler(server.config.LLMProvider, server.config.VectorBackend))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/doc.json", docs.Handler)

	api := router.Group("/api")

	{
		api.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(api, server.services.Agent)
		websocket.RegisterRoutes(api, server.services.Agent, server.config.CORSAllowedOrigins)
	}
}
