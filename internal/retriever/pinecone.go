package retriever

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lc4490/rmp-rag/internal/ranker"
)

// subset of *pinecone.IndexConnection used for queries
type pineconeIndex interface {
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
	Close() error
}

// searches a Pinecone index namespace
type PineconeSearcher struct {
	index pineconeIndex
}

// resolves the index host and opens a connection scoped to the namespace
func NewPineconeSearcher(ctx context.Context, apiKey, indexName, namespace string) (*PineconeSearcher, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe pinecone index %q: %w", indexName, err)
	}

	conn, err := pc.Index(pinecone.NewIndexConnParams{Host: idx.Host, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pinecone index %q: %w", indexName, err)
	}

	return &PineconeSearcher{index: conn}, nil
}

func (s *PineconeSearcher) Search(ctx context.Context, query Query) ([]ranker.Candidate, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	filter, err := pineconeFilter(query.Filter)
	if err != nil {
		return nil, err
	}

	res, err := s.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          query.Vector,
		TopK:            uint32(query.TopK), //nolint:gosec // validated positive
		MetadataFilter:  filter,
		IncludeMetadata: query.IncludeMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pinecone: %w", err)
	}

	candidates := make([]ranker.Candidate, 0, len(res.Matches))

	for _, match := range res.Matches {
		if match == nil || match.Vector == nil {
			continue
		}

		var metadata ranker.Metadata
		if match.Vector.Metadata != nil {
			metadata = match.Vector.Metadata.AsMap()
		}

		candidates = append(candidates, ranker.Candidate{
			ID:         candidateID(match.Vector.Id, metadata),
			Similarity: match.Score,
			Metadata:   metadata,
		})
	}

	return candidates, nil
}

func (s *PineconeSearcher) Close() error {
	return s.index.Close()
}

// builds the pinecone metadata filter, nil when no predicate is set
func pineconeFilter(filter Filter) (*structpb.Struct, error) {
	if filter.MinRating == nil {
		return nil, nil
	}

	built, err := structpb.NewStruct(map[string]any{
		ranker.KeyRating: map[string]any{"$gte": *filter.MinRating},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build pinecone filter: %w", err)
	}

	return built, nil
}
