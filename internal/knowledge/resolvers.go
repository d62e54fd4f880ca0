package knowledge

import "strings"

// CategoryMatch is a category resolved from a query.
type CategoryMatch struct {
	Key   string
	Name  string
	Items []MenuItem
}

// MatchCategory resolves a normalized query to a category. Direct containment
// between the query and a category key (either way) is tried first, in
// category order; then the alias table is scanned and the first alias found
// in the query is resolved against the category keys.
func (x *Index) MatchCategory(normQuery string) (CategoryMatch, bool) {
	if normQuery == "" {
		return CategoryMatch{}, false
	}

	for _, c := range x.categories {
		if strings.Contains(normQuery, c.Key) || strings.Contains(c.Key, normQuery) {
			return categoryMatch(c), true
		}
	}

	for _, a := range categoryAliases {
		if !strings.Contains(normQuery, a.Alias) {
			continue
		}
		target := Normalize(a.Target)
		for _, c := range x.categories {
			key := Normalize(c.Key)
			if strings.Contains(key, target) || strings.Contains(target, key) {
				return categoryMatch(c), true
			}
		}
	}

	return CategoryMatch{}, false
}

func categoryMatch(c *CategoryEntry) CategoryMatch {
	return CategoryMatch{Key: c.Key, Name: c.Name, Items: c.Items}
}

// MatchTag returns every item carrying the first tag whose keywords appear in
// the normalized query. Later tags are not consulted once one matches, even
// when no item carries it.
func (x *Index) MatchTag(normQuery string) []MenuItem {
	for _, tk := range tagKeywords {
		if !containsAny(normQuery, tk.Keywords) {
			continue
		}
		var out []MenuItem
		for _, s := range x.items {
			if s.item.HasTag(tk.Tag) {
				out = append(out, s.item)
			}
		}
		return out
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
