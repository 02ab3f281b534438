package retriever

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// cosine similarity search over a table of (id, embedding, metadata jsonb).
// ratings stored as non-numeric text never satisfy the filter.
const similaritySearchQuery = `
	SELECT
		id::text,
		metadata,
		1 - (embedding <=> $1) AS similarity
	FROM %s
	WHERE $2::float8 IS NULL
		OR (CASE
			WHEN metadata->>'rating' ~ '^-?[0-9]+(\.[0-9]+)?$'
			THEN (metadata->>'rating')::float8
		END) >= $2::float8
	ORDER BY embedding <=> $1
	LIMIT $3
`

// fills in the quoted table name
func buildSimilarityQuery(table string) string {
	return fmt.Sprintf(similaritySearchQuery, pgx.Identifier{table}.Sanitize())
}
