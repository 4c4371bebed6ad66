package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Similarity scores how alike two lowercased names are. Higher is closer.
type Similarity interface {
	Similarity(a, b string) int
}

// SimilarityFunc adapts a plain function to Similarity.
type SimilarityFunc func(a, b string) int

// Similarity calls f(a, b).
func (f SimilarityFunc) Similarity(a, b string) int {
	return f(a, b)
}

// LongestCommonSubstring scores by the length of the longest shared contiguous run.
type LongestCommonSubstring struct{}

// Similarity implements Similarity.
func (LongestCommonSubstring) Similarity(a, b string) int {
	return LongestCommonSubstringLen(a, b)
}

// LevenshteinSimilarity scores by the longer length minus the edit distance,
// i.e. the number of positions the two names agree on.
type LevenshteinSimilarity struct{}

// Similarity implements Similarity.
func (LevenshteinSimilarity) Similarity(a, b string) int {
	return max(len(a), len(b)) - Levenshtein(a, b)
}

var strategies = map[string]Similarity{
	"lcs":         LongestCommonSubstring{},
	"levenshtein": LevenshteinSimilarity{},
}

// StrategyNames lists the names accepted by StrategyByName, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// StrategyByName returns the similarity strategy registered under name.
// An empty name selects the default.
func StrategyByName(name string) (Similarity, error) {
	if strings.TrimSpace(name) == "" {
		return LongestCommonSubstring{}, nil
	}

	s, ok := strategies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown similarity %q (expected one of %s)", name, strings.Join(StrategyNames(), ", ")))
	}

	return s, nil
}
