package retriever

import (
	"context"

	"github.com/lc4490/rmp-rag/internal/ranker"
)

// nearest-neighbor lookup over the professor index
type Searcher interface {
	Search(ctx context.Context, query Query) ([]ranker.Candidate, error)
	Close() error
}

// parameters of one similarity search
type Query struct {
	Vector          []float32
	TopK            int
	IncludeMetadata bool
	Filter          Filter
}

// optional predicates applied by the index
type Filter struct {
	MinRating *float64 // keep records whose rating is at least this value
}

// holds configuration for every supported backend; only the selected one is read
type RetrieverConfig struct {
	Backend string

	PineconeAPIKey    string
	PineconeIndex     string
	PineconeNamespace string

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	DatabaseURL   string
	PGVectorTable string

	ChromemPath       string
	ChromemCollection string
}
