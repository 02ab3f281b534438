package main

import (
	"github.com/gin-gonic/gin"

	"github.com/lc4490/rmp-rag/internal/agent"
	"github.com/lc4490/rmp-rag/internal/config"
	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds all external service clients (LLM, vector index, agent)
type Services struct {
	Agent    *agent.Agent
	LLM      llm.LLM
	Searcher retriever.Searcher
}
