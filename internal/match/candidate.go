package match

import (
	"sort"
	"strings"
)

// Candidate is a named schema element scored against a query.
type Candidate[T Named] struct {
	Item  T
	Score int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList[T Named] []Candidate[T]

// Rank scores every candidate against name and sorts by score, descending.
// Equal scores keep scan order.
func Rank[T Named](m Matcher, name string, candidates []T) CandidateList[T] {
	query := strings.ToLower(name)
	list := make(CandidateList[T], 0, len(candidates))

	for _, c := range candidates {
		list = append(list, Candidate[T]{Item: c, Score: m.score(query, strings.ToLower(c.Ident()))})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})

	return list
}

// Top returns the top n candidates.
func (c CandidateList[T]) Top(n int) CandidateList[T] {
	if n < 0 {
		return nil
	}

	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList[T]) Best() *Candidate[T] {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AtLeast returns candidates scoring at least score.
func (c CandidateList[T]) AtLeast(score int) CandidateList[T] {
	var result CandidateList[T]

	for _, cand := range c {
		if cand.Score >= score {
			result = append(result, cand)
		}
	}

	return result
}
