package knowledge

import "strings"

// FAQMatcher scores queries against a fixed FAQ list.
type FAQMatcher struct {
	entries []faqKeywords
}

type faqKeywords struct {
	question string // normalized
	answer   string
	keywords []string
}

// NewFAQMatcher extracts keywords for every FAQ once. FAQs whose question
// yields no keywords are never matched.
func NewFAQMatcher(faqs []FAQEntry) *FAQMatcher {
	m := &FAQMatcher{}
	for _, faq := range faqs {
		q := Normalize(faq.Question)
		kws := faqQuestionKeywords(q)
		if len(kws) == 0 {
			continue
		}
		m.entries = append(m.entries, faqKeywords{question: q, answer: faq.Answer, keywords: kws})
	}
	return m
}

func faqQuestionKeywords(normQuestion string) []string {
	var out []string
	for _, w := range strings.Fields(normQuestion) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := faqStopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Len returns the number of matchable FAQs.
func (m *FAQMatcher) Len() int {
	return len(m.entries)
}

// Match returns the answer of the FAQ that best fits query.
//
// A query containing an FAQ question (or contained in it) returns that answer
// immediately. Otherwise every keyword found verbatim scores 2 when longer
// than 5 characters and 1 otherwise; a keyword only fuzzy-matched by some
// query word scores 0.5. An FAQ qualifies when its score reaches a threshold
// that grows with its keyword count, and the first highest score wins.
func (m *FAQMatcher) Match(query string) (string, bool) {
	norm := Normalize(query)
	if norm == "" {
		return "", false
	}
	words := strings.Fields(norm)

	var (
		best      string
		bestScore float64
		found     bool
	)

	for _, e := range m.entries {
		if strings.Contains(norm, e.question) || strings.Contains(e.question, norm) {
			return e.answer, true
		}

		score := e.score(norm, words)
		if score >= faqThreshold(len(e.keywords)) && score > bestScore {
			best, bestScore, found = e.answer, score, true
		}
	}

	return best, found
}

func (e faqKeywords) score(norm string, words []string) float64 {
	score := 0.0
	for _, kw := range e.keywords {
		if strings.Contains(norm, kw) {
			if len(kw) > 5 {
				score += 2
			} else {
				score++
			}
			continue
		}
		for _, w := range words {
			if fuzzyMatchNormalized(w, kw) {
				score += 0.5
				break
			}
		}
	}
	return score
}

func faqThreshold(keywords int) float64 {
	switch {
	case keywords <= 1:
		return 2
	case keywords <= 3:
		return 2.5
	default:
		return 3
	}
}
