package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/metrics"
	"github.com/lc4490/rmp-rag/internal/prompt"
	"github.com/lc4490/rmp-rag/internal/ranker"
	"github.com/lc4490/rmp-rag/internal/retriever"
)

// default tuning, matching the hosted deployment
func DefaultOptions() Options {
	return Options{
		RetrievalTopK:  10,
		PromptTopK:     5,
		MinRating:      3.5,
		RankingEnabled: true,
	}
}

func New(embedder llm.Embedder, searcher Searcher, completer llm.Completer, options Options) *Agent {
	defaults := DefaultOptions()

	if options.RetrievalTopK <= 0 {
		options.RetrievalTopK = defaults.RetrievalTopK
	}

	if options.PromptTopK <= 0 {
		options.PromptTopK = defaults.PromptTopK
	}

	return &Agent{
		embedder:  embedder,
		searcher:  searcher,
		completer: completer,
		options:   options,
	}
}

// validates the conversation, embeds the last message, searches, ranks
// and assembles the completion prompt. nothing is streamed yet.
func (a *Agent) Prepare(ctx context.Context, conversation []llm.Message) (*Prepared, error) {
	query, err := ValidateConversation(conversation)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	embedding, err := a.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	metrics.StageDuration.WithLabelValues(metrics.StageEmbed).Observe(time.Since(start).Seconds())
	start = time.Now()

	candidates, err := a.searcher.Search(ctx, retriever.Query{
		Vector:          embedding,
		TopK:            a.options.RetrievalTopK,
		IncludeMetadata: true,
		Filter:          a.searchFilter(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search professors: %w", err)
	}

	metrics.StageDuration.WithLabelValues(metrics.StageSearch).Observe(time.Since(start).Seconds())
	metrics.CandidatesReturned.Observe(float64(len(candidates)))
	start = time.Now()

	var ranked []ranker.Ranked
	if a.options.RankingEnabled {
		ranked = ranker.Rank(candidates, query)
	} else {
		ranked = ranker.Unranked(candidates)
	}

	metrics.StageDuration.WithLabelValues(metrics.StageRank).Observe(time.Since(start).Seconds())

	if len(ranked) > a.options.PromptTopK {
		ranked = ranked[:a.options.PromptTopK]
	}

	return &Prepared{
		Query:      query,
		Candidates: ranked,
		Messages:   prompt.Assemble(query, ranked, a.options.PromptTopK, a.options.RankingEnabled),
	}, nil
}

// a non-positive MinRating disables the rating filter, so records
// without a rating are still returned
func (a *Agent) searchFilter() retriever.Filter {
	if a.options.MinRating <= 0 {
		return retriever.Filter{}
	}

	minRating := a.options.MinRating

	return retriever.Filter{MinRating: &minRating}
}

// opens the streamed completion for a prepared prompt
func (a *Agent) Stream(ctx context.Context, prepared *Prepared) (llm.Stream, error) {
	if prepared == nil {
		return nil, fmt.Errorf("prepared prompt cannot be nil")
	}

	start := time.Now()

	stream, err := a.completer.StreamCompletion(ctx, llm.CompletionRequest{
		Messages: prepared.Messages,
		Model:    a.options.CompletionModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start completion: %w", err)
	}

	metrics.StageDuration.WithLabelValues(metrics.StageStream).Observe(time.Since(start).Seconds())

	return stream, nil
}

// checks roles and returns the last message content as the query text
func ValidateConversation(conversation []llm.Message) (string, error) {
	if len(conversation) == 0 {
		return "", ErrEmptyConversation
	}

	for i, msg := range conversation {
		switch msg.Role {
		case llm.RoleUser, llm.RoleAssistant, llm.RoleSystem:
		default:
			return "", fmt.Errorf("%w: message %d has role %q", ErrInvalidRole, i, msg.Role)
		}
	}

	query := conversation[len(conversation)-1].Content
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	return query, nil
}

// reports whether err was caused by a malformed conversation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyConversation) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrInvalidRole)
}
