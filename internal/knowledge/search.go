package knowledge

import (
	"sort"
	"strings"
)

const (
	scoreNameContains = 10
	scoreNameFuzzy    = 7
	scoreDescription  = 3
	scoreCategory     = 2
	scoreTag          = 2
	scorePhraseBonus  = 15

	strictThreshold = 5
	looseThreshold  = 2

	maxSearchResults = 10
)

// SearchTokens splits a normalized query into the words menu search scores:
// words longer than two characters that are not filler words.
func SearchTokens(normQuery string) []string {
	var out []string
	for _, w := range strings.Fields(normQuery) {
		if len(w) <= 2 {
			continue
		}
		if _, skip := searchSkipWords[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ScoreItem scores a single item against already extracted search tokens.
func ScoreItem(item MenuItem, tokens []string) int {
	return newSearchable(item).score(tokens, strings.Join(tokens, " "))
}

func (s searchable) score(tokens []string, phrase string) int {
	total := 0
	for _, tok := range tokens {
		switch {
		case strings.Contains(s.name, tok):
			total += scoreNameContains
		case s.nameWordFuzzy(tok):
			total += scoreNameFuzzy
		case strings.Contains(s.desc, tok):
			total += scoreDescription
		case strings.Contains(s.category, tok):
			total += scoreCategory
		case strings.Contains(s.tags, tok):
			total += scoreTag
		}
	}
	if len(tokens) > 0 && strings.Contains(s.name, phrase) {
		total += scorePhraseBonus
	}
	return total
}

func (s searchable) nameWordFuzzy(tok string) bool {
	for _, w := range s.nameWords {
		if fuzzyMatchNormalized(tok, w) {
			return true
		}
	}
	return false
}

// Search ranks indexed items against a normalized query. Strict mode keeps
// items scoring above 5, loose mode above 2. Results are sorted by score,
// ties keep index order, and at most 10 are returned.
func (x *Index) Search(normQuery string, strict bool) []MenuItem {
	tokens := SearchTokens(normQuery)
	if len(tokens) == 0 {
		return nil
	}
	phrase := strings.Join(tokens, " ")

	threshold := looseThreshold
	if strict {
		threshold = strictThreshold
	}

	type scored struct {
		item  MenuItem
		score int
	}
	var hits []scored
	for _, s := range x.items {
		if sc := s.score(tokens, phrase); sc > threshold {
			hits = append(hits, scored{item: s.item, score: sc})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > maxSearchResults {
		hits = hits[:maxSearchResults]
	}

	out := make([]MenuItem, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}
