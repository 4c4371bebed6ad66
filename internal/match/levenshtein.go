package match

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-byte edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// a is the shorter string
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// LongestCommonSubstringLen returns the length in runes of the longest contiguous
// run shared by a and b.
func LongestCommonSubstringLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	best := 0

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
				best = max(best, curr[j])
			} else {
				curr[j] = 0
			}
		}

		prev, curr = curr, prev
	}

	return best
}
