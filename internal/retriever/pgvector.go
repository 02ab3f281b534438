package retriever

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/lc4490/rmp-rag/internal/ranker"
)

// searches a postgres table with the pgvector extension
type PGVectorSearcher struct {
	pool  *pgxpool.Pool
	query string
}

func NewPGVectorSearcher(ctx context.Context, connString, table string) (*PGVectorSearcher, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PGVectorSearcher{pool: pool, query: buildSimilarityQuery(table)}, nil
}

func (s *PGVectorSearcher) Search(ctx context.Context, query Query) ([]ranker.Candidate, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, s.query, pgvector.NewVector(query.Vector), query.Filter.MinRating, query.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var candidates []ranker.Candidate

	for rows.Next() {
		var (
			id         string
			metadata   map[string]any
			similarity float64
		)

		if err := rows.Scan(&id, &metadata, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if !query.IncludeMetadata {
			metadata = nil
		}

		candidates = append(candidates, ranker.Candidate{
			ID:         candidateID(id, metadata),
			Similarity: float32(similarity),
			Metadata:   metadata,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return candidates, nil
}

func (s *PGVectorSearcher) Close() error {
	s.pool.Close()
	return nil
}
