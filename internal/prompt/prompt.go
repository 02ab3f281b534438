package prompt

import (
	"strconv"
	"strings"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
)

const (
	RankedHeader   = "Retrieved and ranked professor data:"
	UnrankedHeader = "Retrieved professor data:"

	notAvailable = "N/A"
)

// renders the first k candidates as the context block appended to the query.
// scored adds the rank score line; an empty list yields the header alone.
func FormatCandidates(candidates []ranker.Ranked, k int, scored bool) string {
	var builder strings.Builder

	builder.WriteString("\n\n")

	if scored {
		builder.WriteString(RankedHeader)
	} else {
		builder.WriteString(UnrankedHeader)
	}

	builder.WriteString("\n")

	if k < len(candidates) {
		candidates = candidates[:max(k, 0)]
	}

	for _, candidate := range candidates {
		metadata := candidate.Metadata

		builder.WriteString("\n")
		writeLine(&builder, "Professor", candidate.ID)
		writeLine(&builder, "Subject", textOrNA(metadata, ranker.KeySubject))
		writeLine(&builder, "Rating", textOrNA(metadata, ranker.KeyRating))
		writeLine(&builder, "Difficulty", textOrNA(metadata, ranker.KeyDifficulty))
		writeLine(&builder, "Keywords", strings.Join(metadata.Strings(ranker.KeyKeywords), ", "))
		writeLine(&builder, "Review Snippet", textOrNA(metadata, ranker.KeyReviewSnippet))

		if scored {
			writeLine(&builder, "Rank Score", strconv.FormatFloat(candidate.RankScore, 'f', -1, 64))
		}
	}

	return builder.String()
}

// appends the candidate block to the user's query text
func BuildUserContent(query string, candidates []ranker.Ranked, k int, scored bool) string {
	return query + FormatCandidates(candidates, k, scored)
}

// returns the system and user turns sent to the completion model
func Assemble(query string, candidates []ranker.Ranked, k int, scored bool) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: BuildUserContent(query, candidates, k, scored)},
	}
}

func writeLine(builder *strings.Builder, label, value string) {
	builder.WriteString(label)
	builder.WriteString(": ")
	builder.WriteString(value)
	builder.WriteString("\n")
}

func textOrNA(metadata ranker.Metadata, key string) string {
	if text, ok := metadata.Text(key); ok {
		return text
	}

	return notAvailable
}
