package llm

import (
	"context"
	"fmt"
)

// combines an Embedder and a Completer into a single LLM
type CompositeLLM struct {
	Embedder
	Completer
}

// creates a new LLM for the configured provider
func New(ctx context.Context, config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	applyDefaults(config)

	client, err := newProvider(ctx, config)
	if err != nil {
		return nil, err
	}

	return withRateLimit(client, config.RateLimit, config.RateBurst), nil
}

// builds the client for the configured provider
func newProvider(ctx context.Context, config *Config) (LLM, error) {
	switch config.Provider {
	case ProviderOpenAI:
		client := NewOpenAIClient(OpenAIConfig{
			APIKey:          config.APIKey,
			BaseURL:         config.BaseURL,
			EmbeddingModel:  config.EmbeddingModel,
			CompletionModel: config.CompletionModel,
		})

		return &CompositeLLM{Embedder: client, Completer: client}, nil

	case ProviderOllama:
		client, err := NewOllamaClient(OllamaConfig{
			Host:            config.Host,
			EmbeddingModel:  config.EmbeddingModel,
			CompletionModel: config.CompletionModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}

		return &CompositeLLM{Embedder: client, Completer: client}, nil

	case ProviderGemini:
		client, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:          config.APIKey,
			EmbeddingModel:  config.EmbeddingModel,
			CompletionModel: config.CompletionModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		return &CompositeLLM{Embedder: client, Completer: client}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
