package match

import "strings"

// DefaultThreshold is the score a fuzzy candidate must strictly exceed.
const DefaultThreshold = 2

// Named is anything resolvable by name: classifiers and features.
type Named interface {
	Ident() string
}

// Matcher holds the fuzzy pass configuration.
type Matcher struct {
	Threshold  int
	Similarity Similarity // nil means LongestCommonSubstring
}

// DefaultMatcher returns a Matcher with the default threshold and similarity.
func DefaultMatcher() Matcher {
	return Matcher{Threshold: DefaultThreshold, Similarity: LongestCommonSubstring{}}
}

func (m Matcher) score(a, b string) int {
	if m.Similarity == nil {
		return LongestCommonSubstringLen(a, b)
	}

	return m.Similarity.Similarity(a, b)
}

// Exact returns the first candidate whose name equals name, ignoring case.
func Exact[T Named](name string, candidates []T) (T, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Ident(), name) {
			return c, true
		}
	}

	var zero T

	return zero, false
}

// Fuzzy returns the best scoring candidate whose score is strictly above the
// threshold. Equal scores keep the earlier candidate.
func Fuzzy[T Named](m Matcher, name string, candidates []T) (T, bool) {
	var best T

	found := false
	bestScore := m.Threshold
	query := strings.ToLower(name)

	for _, c := range candidates {
		s := m.score(query, strings.ToLower(c.Ident()))
		if s > bestScore {
			best, bestScore, found = c, s, true
		}
	}

	return best, found
}

// Find tries Exact and falls back to Fuzzy. The similarity is never consulted
// when an exact hit exists.
func Find[T Named](m Matcher, name string, candidates []T) (T, bool) {
	if c, ok := Exact(name, candidates); ok {
		return c, true
	}

	return Fuzzy(m, name, candidates)
}

// Suggest returns up to n candidate names that came closest to name, best first.
// Only candidates scoring at least the threshold (and above zero) are offered.
func Suggest[T Named](m Matcher, name string, candidates []T, n int) []string {
	ranked := Rank(m, name, candidates).AtLeast(max(m.Threshold, 1)).Top(n)

	result := make([]string, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, c.Item.Ident())
	}

	return result
}
