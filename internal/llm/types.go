package llm

import "context"

// represents different LLM providers
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// chat roles accepted in a conversation
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// opens streamed chat completions
type Completer interface {
	StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error)
}

// combines embedding and completion from one provider
type LLM interface {
	Embedder
	Completer
}

// ordered messages sent to the completion model
type CompletionRequest struct {
	Messages []Message
	Model    string // optional override of the configured completion model
}

// pull-based sequence of completion text fragments.
// Next blocks until a fragment is available or the stream ends;
// Err reports why it ended once Next has returned false.
// Close releases the upstream connection and is safe to call more than once.
type Stream interface {
	Next() bool
	Chunk() string
	Err() error
	Close() error
}

// holds configuration for LLM initialization
type Config struct {
	Provider        Provider
	APIKey          string
	BaseURL         string // openai compatible endpoint override
	Host            string // ollama host
	EmbeddingModel  string // e.g., "text-embedding-3-small"
	CompletionModel string // e.g., "gpt-4o-mini"
	RateLimit       float64 // requests per second across embed and completion calls, 0 disables
	RateBurst       int
}
