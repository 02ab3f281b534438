package llm

import (
	"github.com/lc4490/rmp-rag/internal/config"
)

// default models per provider
var defaultModels = map[Provider]struct{ embedding, completion string }{
	ProviderOpenAI: {"text-embedding-3-small", "gpt-4o-mini"},
	ProviderOllama: {"nomic-embed-text", "llama3.2"},
	ProviderGemini: {"text-embedding-004", "gemini-2.0-flash"},
}

// derives provider configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	provider := Provider(cfg.LLMProvider)

	c := &Config{
		Provider:        provider,
		APIKey:          getAPIKeyForProvider(provider, cfg),
		EmbeddingModel:  cfg.EmbeddingModel,
		CompletionModel: cfg.CompletionModel,
		RateLimit:       cfg.LLMRateLimit,
		RateBurst:       cfg.LLMRateBurst,
	}

	switch provider {
	case ProviderOpenAI:
		c.BaseURL = cfg.OpenAIBaseURL
	case ProviderOllama:
		c.Host = cfg.OllamaHost
	}

	applyDefaults(c)

	return c
}

// fills in empty model names with the provider defaults
func applyDefaults(c *Config) {
	defaults, ok := defaultModels[c.Provider]
	if !ok {
		return
	}

	if c.EmbeddingModel == "" {
		c.EmbeddingModel = defaults.embedding
	}

	if c.CompletionModel == "" {
		c.CompletionModel = defaults.completion
	}
}

// returns the API key for the given provider
func getAPIKeyForProvider(provider Provider, cfg *config.Config) string {
	switch provider {
	case ProviderOpenAI:
		return cfg.OpenAIKey
	case ProviderGemini:
		return cfg.GeminiKey
	default:
		return ""
	}
}
