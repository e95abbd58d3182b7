// Package fuzzy implements the approximate string matching used by catalog search.
//
// The distance function is a modified Damerau-Levenshtein: runs of consecutive
// matching characters earn an extra discount, so a string embedded whole in
// another scores better than one scattered across it. The discount can push
// intermediate cells below zero, which is deliberate and required for the
// ranking to come out right.
package fuzzy

import "strings"

// Distance returns the modified Damerau-Levenshtein distance between s and t,
// computed with a Wagner-Fischer style DP grid. Comparison is by code point
// with no case folding or unicode normalization; callers decide casing.
//
// On top of the standard recurrence (substitution, insertion, deletion at
// cost 1, adjacent transposition via the Damerau extension), a match whose
// preceding characters also matched decrements the inherited cost by one.
// Cells are signed and may go negative on long exact runs.
func Distance(s, t string) int {
	sr := []rune(s)
	tr := []rune(t)
	sLen, tLen := len(sr), len(tr)

	costs := make([][]int, sLen+1)
	for i := range costs {
		costs[i] = make([]int, tLen+1)
	}
	for i := 0; i <= sLen; i++ {
		costs[i][0] = i
	}
	for j := 1; j <= tLen; j++ {
		costs[0][j] = j
	}

	for i := 1; i <= sLen; i++ {
		for j := 1; j <= tLen; j++ {
			if sr[i-1] == tr[j-1] {
				costs[i][j] = costs[i-1][j-1]
				// Consecutive-run bonus: the previous pair matched too.
				if i-2 >= 0 && j-2 >= 0 && sr[i-2] == tr[j-2] {
					costs[i][j]--
				}
				continue
			}
			best := costs[i-1][j] // deletion
			if v := costs[i][j-1]; v < best { // insertion
				best = v
			}
			if v := costs[i-1][j-1]; v < best { // substitution
				best = v
			}
			// Adjacent transposition (Damerau).
			if i > 1 && j > 1 && sr[i-1] == tr[j-2] && sr[i-2] == tr[j-1] {
				if v := costs[i-2][j-2]; v < best {
					best = v
				}
			}
			costs[i][j] = 1 + best
		}
	}
	return costs[sLen][tLen]
}

// Similarity scores how well the query term what matches the catalog word
// where. Only where is lowercased; what is compared as given. The score is
// the longer rune length minus the distance, so an exact match of an n-rune
// word scores n and a long matching run can score even higher.
func Similarity(where, what string) int {
	lowerWhere := strings.ToLower(where)
	maxSize := len([]rune(what))
	if l := len([]rune(lowerWhere)); l > maxSize {
		maxSize = l
	}
	return maxSize - Distance(lowerWhere, what)
}
