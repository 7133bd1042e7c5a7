// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

import (
	"strings"
)

// Nearest returns the candidate closest to word, or "" when no candidate
// is close enough to be a likely misspelling. Comparison ignores case.
func Nearest(word string, candidates []string) string {
	word = strings.ToLower(word)

	// allow roughly one typo per three characters
	maxDist := 1 + len(word)/3

	var nearest string
	for _, candidate := range candidates {
		dist := editDistance(word, strings.ToLower(candidate))
		if dist == 0 {
			return candidate
		}
		if dist <= maxDist {
			maxDist = dist - 1
			nearest = candidate
		}
	}
	return nearest
}

// editDistance is Levenshtein distance where an adjacent
// transposition counts as a single edit.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

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
