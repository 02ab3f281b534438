package ranker

// metadata stored alongside a professor vector. values are untyped:
// numbers may arrive as numbers or numeric strings, keywords as a list
// or a comma separated string, and any field may be missing.
type Metadata map[string]any

// well-known metadata keys
const (
	KeySubject       = "subject"
	KeyRating        = "rating"
	KeyDifficulty    = "difficulty"
	KeyKeywords      = "keywords"
	KeyReviewSnippet = "reviewSnippet"
)

// one professor returned by a similarity search
type Candidate struct {
	ID         string   `json:"id"`
	Similarity float32  `json:"similarity"`
	Metadata   Metadata `json:"metadata,omitempty"`
}

// a candidate with its heuristic score
type Ranked struct {
	Candidate
	RankScore float64 `json:"rankScore"`
}

// scoring weights and defaults
const (
	RatingWeight      = 2.0
	DifficultyWeight  = 1.5
	KeywordBonus      = 2.0
	MaxDifficulty     = 5.0
	DefaultRating     = 0.0
	DefaultDifficulty = 3.0
)
