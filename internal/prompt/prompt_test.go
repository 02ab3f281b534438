package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/ranker"
)

func TestFormatCandidates_Empty(t *testing.T) {
	block := FormatCandidates(nil, 5, true)

	assert.Equal(t, "\n\n"+RankedHeader+"\n", block)
	assert.NotContains(t, block, "Professor:")
}

func TestFormatCandidates_FieldsInOrder(t *testing.T) {
	candidates := []ranker.Ranked{{
		Candidate: ranker.Candidate{
			ID: "Dr. Jane Doe",
			Metadata: ranker.Metadata{
				"subject":       "Biology",
				"rating":        4.5,
				"difficulty":    "2",
				"keywords":      []any{"labs", "clear"},
				"reviewSnippet": "Great lectures.",
			},
		},
		RankScore: 15.5,
	}}

	block := FormatCandidates(candidates, 5, true)

	want := "\n\n" + RankedHeader + "\n\n" +
		"Professor: Dr. Jane Doe\n" +
		"Subject: Biology\n" +
		"Rating: 4.5\n" +
		"Difficulty: 2\n" +
		"Keywords: labs, clear\n" +
		"Review Snippet: Great lectures.\n" +
		"Rank Score: 15.5\n"

	assert.Equal(t, want, block)
}

func TestFormatCandidates_MissingMetadata(t *testing.T) {
	block := FormatCandidates([]ranker.Ranked{{Candidate: ranker.Candidate{ID: "Prof X"}, RankScore: 3}}, 5, true)

	assert.Contains(t, block, "Subject: N/A\n")
	assert.Contains(t, block, "Rating: N/A\n")
	assert.Contains(t, block, "Difficulty: N/A\n")
	assert.Contains(t, block, "Keywords: \n")
	assert.Contains(t, block, "Review Snippet: N/A\n")
	assert.Contains(t, block, "Rank Score: 3\n")
}

func TestFormatCandidates_TruncatesToK(t *testing.T) {
	var candidates []ranker.Ranked
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		candidates = append(candidates, ranker.Ranked{Candidate: ranker.Candidate{ID: id}})
	}

	block := FormatCandidates(candidates, 5, true)

	assert.Equal(t, 5, strings.Count(block, "Professor:"))
	assert.Contains(t, block, "Professor: p5\n")
	assert.NotContains(t, block, "Professor: p6\n")
	assert.Less(t, strings.Index(block, "p1"), strings.Index(block, "p2"))
}

func TestFormatCandidates_Unscored(t *testing.T) {
	block := FormatCandidates([]ranker.Ranked{{Candidate: ranker.Candidate{ID: "p1"}}}, 5, false)

	assert.Contains(t, block, UnrankedHeader)
	assert.NotContains(t, block, "Rank Score")
}

func TestAssemble(t *testing.T) {
	messages := Assemble("calculus help", nil, 5, true)

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, SystemPrompt, messages[0].Content)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.True(t, strings.HasPrefix(messages[1].Content, "calculus help\n\n"+RankedHeader))
}

func TestSystemPrompt_IsStatic(t *testing.T) {
	assert.Contains(t, SystemPrompt, "RateMyProfessor assistant")
	assert.Contains(t, SystemPrompt, "top three professor recommendations")
}
