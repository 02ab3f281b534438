package main

import (
	"context"
	"fmt"

	"github.com/lc4490/rmp-rag/internal/agent"
	"github.com/lc4490/rmp-rag/internal/config"
	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

// creates and configures all service clients once at startup
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	llmClient, err := llm.New(ctx, llm.NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	searcher, err := retriever.New(ctx, retriever.NewConfig(cfg), llmClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s searcher: %w", cfg.VectorBackend, err)
	}

	agentClient := agent.New(llmClient, searcher, llmClient, agent.Options{
		RetrievalTopK:   cfg.RetrievalTopK,
		PromptTopK:      cfg.PromptTopK,
		MinRating:       cfg.MinRating,
		RankingEnabled:  cfg.RankingEnabled,
		CompletionModel: cfg.CompletionModel,
	})

	return &Services{
		Agent:    agentClient,
		LLM:      llmClient,
		Searcher: searcher,
	}, nil
}
