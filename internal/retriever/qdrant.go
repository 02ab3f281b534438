package retriever

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	qd "github.com/qdrant/go-client/qdrant"

	"github.com/lc4490/rmp-rag/internal/ranker"
)

// default gRPC port of a qdrant server
const defaultQdrantPort = 6334

// searches a Qdrant collection over gRPC
type QdrantSearcher struct {
	client     *qd.Client
	collection string
}

func NewQdrantSearcher(rawURL, apiKey, collection string) (*QdrantSearcher, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant URL: %w", err)
	}

	port := defaultQdrantPort
	if parsedURL.Port() != "" {
		p, err := strconv.Atoi(parsedURL.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant port: %w", err)
		}

		port = p
	}

	client, err := qd.NewClient(&qd.Config{
		Host:   parsedURL.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsedURL.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &QdrantSearcher{client: client, collection: collection}, nil
}

func (s *QdrantSearcher) Search(ctx context.Context, query Query) ([]ranker.Candidate, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	points, err := s.client.Query(ctx, buildQdrantQuery(s.collection, query))
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	return convertQdrantPoints(points), nil
}

func (s *QdrantSearcher) Close() error {
	return s.client.Close()
}

func buildQdrantQuery(collection string, query Query) *qd.QueryPoints {
	limit := uint64(query.TopK) //nolint:gosec // validated positive

	request := &qd.QueryPoints{
		CollectionName: collection,
		Query:          qd.NewQuery(query.Vector...),
		WithPayload:    qd.NewWithPayload(query.IncludeMetadata),
		Limit:          &limit,
	}

	if query.Filter.MinRating != nil {
		request.Filter = &qd.Filter{
			Must: []*qd.Condition{
				qd.NewRange(ranker.KeyRating, &qd.Range{Gte: query.Filter.MinRating}),
			},
		}
	}

	return request
}

func convertQdrantPoints(points []*qd.ScoredPoint) []ranker.Candidate {
	candidates := make([]ranker.Candidate, 0, len(points))

	for _, point := range points {
		metadata := payloadToMetadata(point.GetPayload())

		candidates = append(candidates, ranker.Candidate{
			ID:         candidateID(pointID(point.GetId()), metadata),
			Similarity: point.GetScore(),
			Metadata:   metadata,
		})
	}

	return candidates
}
