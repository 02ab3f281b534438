package retriever

import (
	"context"
	"fmt"

	"github.com/lc4490/rmp-rag/internal/config"
	"github.com/lc4490/rmp-rag/internal/llm"
)

// opens the configured vector backend. the embedder is only used by
// backends that embed documents themselves (chromem).
func New(ctx context.Context, cfg *RetrieverConfig, embedder llm.Embedder) (Searcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var (
		searcher Searcher
		err      error
	)

	// each case assigns through a concrete pointer so a failed
	// constructor never yields a non-nil Searcher
	switch cfg.Backend {
	case config.BackendPinecone:
		var s *PineconeSearcher
		if s, err = NewPineconeSearcher(ctx, cfg.PineconeAPIKey, cfg.PineconeIndex, cfg.PineconeNamespace); err == nil {
			searcher = s
		}
	case config.BackendQdrant:
		var s *QdrantSearcher
		if s, err = NewQdrantSearcher(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection); err == nil {
			searcher = s
		}
	case config.BackendPGVector:
		var s *PGVectorSearcher
		if s, err = NewPGVectorSearcher(ctx, cfg.DatabaseURL, cfg.PGVectorTable); err == nil {
			searcher = s
		}
	case config.BackendChromem:
		var s *ChromemSearcher
		if s, err = NewChromemSearcher(cfg.ChromemPath, cfg.ChromemCollection, embedder); err == nil {
			searcher = s
		}
	default:
		return nil, fmt.Errorf("unsupported vector backend: %s", cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	return searcher, nil
}
