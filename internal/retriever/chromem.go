package retriever

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
)

// searches an embedded chromem-go collection, persisted on disk when a path is set
type ChromemSearcher struct {
	collection *chromem.Collection
}

func NewChromemSearcher(path, collectionName string, embedder llm.Embedder) (*ChromemSearcher, error) {
	db := chromem.NewDB()

	if path != "" {
		var err error

		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open vector db: %w", err)
		}
	}

	var embedFunc chromem.EmbeddingFunc
	if embedder != nil {
		embedFunc = embedder.GenerateEmbedding
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("get/create collection: %w", err)
	}

	return &ChromemSearcher{collection: collection}, nil
}

// the rating filter runs after the lookup since chromem only matches exact metadata
func (s *ChromemSearcher) Search(ctx context.Context, query Query) ([]ranker.Candidate, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}

	results, err := s.collection.QueryEmbedding(ctx, query.Vector, min(query.TopK, count), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}

	candidates := make([]ranker.Candidate, 0, len(results))

	for _, result := range results {
		metadata := stringMetadata(result.Metadata)

		if result.Content != "" {
			if _, ok := metadata.Text(ranker.KeyReviewSnippet); !ok {
				if metadata == nil {
					metadata = ranker.Metadata{}
				}

				metadata[ranker.KeyReviewSnippet] = result.Content
			}
		}

		candidates = append(candidates, ranker.Candidate{
			ID:         candidateID(result.ID, metadata),
			Similarity: result.Similarity,
			Metadata:   metadata,
		})
	}

	candidates = applyFilter(candidates, query.Filter)

	if !query.IncludeMetadata {
		for i := range candidates {
			candidates[i].Metadata = nil
		}
	}

	return candidates, nil
}

func (s *ChromemSearcher) Close() error {
	return nil
}
