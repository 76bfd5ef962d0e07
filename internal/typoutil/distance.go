// Package typoutil finds near misses between field names.
package typoutil

import "strings"

// DamerauLevenshteinDistance returns the number of single-rune insertions, deletions,
// substitutions or adjacent transpositions needed to turn a into b.
// Each substring is edited at most once (optimal string alignment).
func DamerauLevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Three rolling rows: i-2, i-1 and i.
	prevPrev := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				curr[j] = min(curr[j], prevPrev[j-2]+1)
			}
		}
		prevPrev, prev, curr = prev, curr, prevPrev
	}
	return prev[len(rb)]
}

// ClosestField returns the candidate nearest to name, compared case-insensitively,
// when it is within maxDistance edits. Ties go to the earlier candidate.
func ClosestField(name string, candidates []string, maxDistance int) (string, bool) {
	best, bestDistance := "", maxDistance+1
	lowered := strings.ToLower(name)

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		if d := DamerauLevenshteinDistance(lowered, strings.ToLower(candidate)); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best, best != ""
}
