package config

// application configuration resolved from the environment
type Config struct {
	Environment        string
	Port               string
	LogFilePath        string
	CORSAllowedOrigins []string

	// completion and embedding provider
	LLMProvider     string
	OpenAIKey       string
	OpenAIBaseURL   string
	GeminiKey       string
	OllamaHost      string
	EmbeddingModel  string
	CompletionModel string
	LLMRateLimit    float64 // outbound provider requests per second, 0 disables
	LLMRateBurst    int

	// vector index backend
	VectorBackend     string
	PineconeKey       string
	PineconeIndex     string
	PineconeNamespace string
	QdrantURL         string
	QdrantKey         string
	QdrantCollection  string
	DatabaseURL       string
	PGVectorTable     string
	ChromemPath       string
	ChromemCollection string

	// retrieval tuning
	RetrievalTopK  int
	PromptTopK     int
	MinRating      float64
	RankingEnabled bool
}

// command line flags for the terminal chat client
type Flags struct {
	ServerURL string
	Theme     string
}

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	BackendPinecone = "pinecone"
	BackendQdrant   = "qdrant"
	BackendPGVector = "pgvector"
	BackendChromem  = "chromem"
)
