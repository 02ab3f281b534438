package retriever

import (
	"fmt"
	"strconv"

	qd "github.com/qdrant/go-client/qdrant"

	"github.com/lc4490/rmp-rag/internal/ranker"
)

// metadata key holding the professor name when the point id is synthetic
const professorKey = "professor"

// keeps candidates whose rating meets the filter. records without a
// numeric rating are dropped, matching what the indexes do server-side.
func applyFilter(candidates []ranker.Candidate, filter Filter) []ranker.Candidate {
	if filter.MinRating == nil {
		return candidates
	}

	kept := candidates[:0:0]

	for _, candidate := range candidates {
		if rating, ok := candidate.Metadata.Number(ranker.KeyRating); ok && rating >= *filter.MinRating {
			kept = append(kept, candidate)
		}
	}

	return kept
}

// picks the professor name from metadata, falling back to the record id
func candidateID(recordID string, metadata ranker.Metadata) string {
	if name, ok := metadata.Text(professorKey); ok {
		return name
	}

	return recordID
}

// converts a qdrant payload into plain Go values
func payloadToMetadata(payload map[string]*qd.Value) ranker.Metadata {
	if len(payload) == 0 {
		return nil
	}

	metadata := make(ranker.Metadata, len(payload))

	for key, value := range payload {
		if converted := qdrantValue(value); converted != nil {
			metadata[key] = converted
		}
	}

	return metadata
}

func qdrantValue(value *qd.Value) any {
	switch kind := value.GetKind().(type) {
	case *qd.Value_StringValue:
		return kind.StringValue
	case *qd.Value_DoubleValue:
		return kind.DoubleValue
	case *qd.Value_IntegerValue:
		return kind.IntegerValue
	case *qd.Value_BoolValue:
		return kind.BoolValue
	case *qd.Value_ListValue:
		items := make([]any, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			if converted := qdrantValue(item); converted != nil {
				items = append(items, converted)
			}
		}

		return items
	case *qd.Value_StructValue:
		return map[string]any(payloadToMetadata(kind.StructValue.GetFields()))
	default:
		return nil
	}
}

// renders a qdrant point id as text
func pointID(id *qd.PointId) string {
	if id == nil {
		return ""
	}

	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}

	return strconv.FormatUint(id.GetNum(), 10)
}

// converts chromem's string metadata, keeping values as text for lenient parsing
func stringMetadata(values map[string]string) ranker.Metadata {
	if len(values) == 0 {
		return nil
	}

	metadata := make(ranker.Metadata, len(values))
	for key, value := range values {
		metadata[key] = value
	}

	return metadata
}

func validateQuery(query Query) error {
	if len(query.Vector) == 0 {
		return fmt.Errorf("query vector is required")
	}

	if query.TopK <= 0 {
		return fmt.Errorf("topK must be positive, got %d", query.TopK)
	}

	return nil
}
