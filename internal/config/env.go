package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnvironment()
}

// builds the configuration from the current process environment only
func FromEnvironment() (*Config, error) {
	retrievalTopK, err := getEnvAsInt("RETRIEVAL_TOP_K", 10)
	if err != nil {
		return nil, err
	}

	promptTopK, err := getEnvAsInt("PROMPT_TOP_K", 5)
	if err != nil {
		return nil, err
	}

	minRating, err := getEnvAsFloat("MIN_RATING", 3.5)
	if err != nil {
		return nil, err
	}

	rankingEnabled, err := getEnvAsBool("RANKING_ENABLED", true)
	if err != nil {
		return nil, err
	}

	llmRateLimit, err := getEnvAsFloat("LLM_RATE_LIMIT", 50)
	if err != nil {
		return nil, err
	}

	llmRateBurst, err := getEnvAsInt("LLM_RATE_BURST", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		LogFilePath:        os.Getenv("LOG_FILE_PATH"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		EmbeddingModel:  os.Getenv("EMBEDDING_MODEL"),
		CompletionModel: os.Getenv("COMPLETION_MODEL"),
		LLMRateLimit:    llmRateLimit,
		LLMRateBurst:    llmRateBurst,

		VectorBackend:     strings.ToLower(getEnv("VECTOR_BACKEND", BackendPinecone)),
		PineconeKey:       os.Getenv("PINECONE_API_KEY"),
		PineconeIndex:     getEnv("PINECONE_INDEX", "rag"),
		PineconeNamespace: getEnv("PINECONE_NAMESPACE", "ns1"),
		QdrantURL:         os.Getenv("QDRANT_URL"),
		QdrantKey:         os.Getenv("QDRANT_API_KEY"),
		QdrantCollection:  getEnv("QDRANT_COLLECTION", "professors"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PGVectorTable:     getEnv("PGVECTOR_TABLE", "professors"),
		ChromemPath:       getEnv("CHROMEM_PATH", "./data/vectors"),
		ChromemCollection: getEnv("CHROMEM_COLLECTION", "professors"),

		RetrievalTopK:  retrievalTopK,
		PromptTopK:     promptTopK,
		MinRating:      minRating,
		RankingEnabled: rankingEnabled,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checks provider credentials and tuning bounds
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	case ProviderGemini:
		if c.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.VectorBackend {
	case BackendPinecone:
		if c.PineconeKey == "" {
			return fmt.Errorf("PINECONE_API_KEY environment variable is required")
		}
	case BackendQdrant:
		if c.QdrantURL == "" {
			return fmt.Errorf("QDRANT_URL environment variable is required")
		}
	case BackendPGVector:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case BackendChromem:
	default:
		return fmt.Errorf("unsupported VECTOR_BACKEND %q", c.VectorBackend)
	}

	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.RetrievalTopK)
	}

	if c.PromptTopK <= 0 {
		return fmt.Errorf("PROMPT_TOP_K must be positive, got %d", c.PromptTopK)
	}

	if c.LLMRateLimit < 0 {
		return fmt.Errorf("LLM_RATE_LIMIT must not be negative, got %v", c.LLMRateLimit)
	}

	if c.LLMRateLimit > 0 && c.LLMRateBurst <= 0 {
		return fmt.Errorf("LLM_RATE_BURST must be positive, got %d", c.LLMRateBurst)
	}

	return nil
}

// returns non-secret settings as logger key/value pairs
func (c *Config) LogFields() []any {
	return []any{
		"environment", c.Environment,
		"port", c.Port,
		"llm_provider", c.LLMProvider,
		"embedding_model", c.EmbeddingModel,
		"completion_model", c.CompletionModel,
		"llm_rate_limit", c.LLMRateLimit,
		"vector_backend", c.VectorBackend,
		"retrieval_top_k", c.RetrievalTopK,
		"prompt_top_k", c.PromptTopK,
		"min_rating", c.MinRating,
		"ranking_enabled", c.RankingEnabled,
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number, got %q", key, raw)
	}

	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return value, nil
}

// splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
