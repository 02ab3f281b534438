package agent

import (
	"context"
	"errors"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

// request validation failures, reported to clients as 400
var (
	ErrEmptyConversation = errors.New("conversation must contain at least one message")
	ErrEmptyQuery        = errors.New("last message content must not be empty")
	ErrInvalidRole       = errors.New("message role must be user, assistant or system")
)

// nearest-neighbor search over the professor index
type Searcher interface {
	Search(ctx context.Context, query retriever.Query) ([]ranker.Candidate, error)
}

// orchestrates embed, search, rank, prompt and completion for one request
type Agent struct {
	embedder  llm.Embedder
	searcher  Searcher
	completer llm.Completer
	options   Options
}

// retrieval and prompt tuning
type Options struct {
	RetrievalTopK   int     // candidates requested from the index
	PromptTopK      int     // candidates placed in the prompt
	MinRating       float64 // index-side rating filter, 0 disables it
	RankingEnabled  bool    // false keeps vector search order and omits scores
	CompletionModel string  // optional override
}

// the outcome of everything before the completion call
type Prepared struct {
	Query      string          `json:"query"`
	Candidates []ranker.Ranked `json:"candidates"`
	Messages   []llm.Message   `json:"messages"`
}
