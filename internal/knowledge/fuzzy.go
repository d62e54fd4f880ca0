package knowledge

import "strings"

// FuzzyMatch reports whether query and target are approximately equal.
//
// Both sides are normalized first. Containment in either direction is a
// match. Pairs where both sides have at least 4 characters and lengths within
// one of each other also match when at most one character differs at the same
// position over the shorter length. This tolerates a single substitution (or a
// trailing extra character), not general edit distance.
func FuzzyMatch(query, target string) bool {
	return fuzzyMatchNormalized(Normalize(query), Normalize(target))
}

func fuzzyMatchNormalized(q, t string) bool {
	if strings.Contains(t, q) || strings.Contains(q, t) {
		return true
	}

	if len(q) < 4 || len(t) < 4 {
		return false
	}

	diff := len(q) - len(t)
	if diff < -1 || diff > 1 {
		return false
	}

	n := min(len(q), len(t))
	mismatches := 0
	for i := 0; i < n; i++ {
		if q[i] != t[i] {
			mismatches++
			if mismatches > 1 {
				return false
			}
		}
	}
	return true
}
