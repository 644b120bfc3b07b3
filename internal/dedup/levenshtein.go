package dedup

import "github.com/agnivade/levenshtein"

// levenshteinRatio converts unit-cost edit distance into a similarity
// percentage over the longer string. Two empty strings are identical by
// convention.
func levenshteinRatio(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * float64(maxLen-dist) / float64(maxLen)
}
