package ranker

import (
	"cmp"
	"slices"
	"strings"
)

// computes the heuristic score of a candidate against the query text:
// 2*rating + 1.5*(5-difficulty), plus 2 when a keyword occurs in the query.
// missing or unparseable rating counts as 0 and difficulty as 3.
func Score(candidate Candidate, query string) float64 {
	rating, ok := candidate.Metadata.Number(KeyRating)
	if !ok {
		rating = DefaultRating
	}

	difficulty, ok := candidate.Metadata.Number(KeyDifficulty)
	if !ok {
		difficulty = DefaultDifficulty
	}

	score := RatingWeight*rating + DifficultyWeight*(MaxDifficulty-difficulty)

	if matchesKeyword(candidate.Metadata.Strings(KeyKeywords), query) {
		score += KeywordBonus
	}

	return score
}

// scores every candidate and returns them highest first.
// ties keep their retrieval order and the input slice is left untouched.
func Rank(candidates []Candidate, query string) []Ranked {
	ranked := make([]Ranked, len(candidates))

	for i, candidate := range candidates {
		ranked[i] = Ranked{Candidate: candidate, RankScore: Score(candidate, query)}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.RankScore, a.RankScore)
	})

	return ranked
}

// wraps candidates without scoring, keeping search order
func Unranked(candidates []Candidate) []Ranked {
	ranked := make([]Ranked, len(candidates))

	for i, candidate := range candidates {
		ranked[i] = Ranked{Candidate: candidate}
	}

	return ranked
}

// reports whether any keyword is a case-insensitive substring of the query
func matchesKeyword(keywords []string, query string) bool {
	lowered := strings.ToLower(query)

	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
