package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/monika-restaurant/receptionist/internal/domain"
)

// ErrNilMenu is returned when BuildIndex is given no menu at all.
var ErrNilMenu = errors.New("menu table is nil")

// MenuItem is a flattened, display-ready menu entry.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Section     Section  `json:"section"`
	Tags        []string `json:"tags,omitempty"`
	AddOns      string   `json:"addOns,omitempty"`
}

// HasTag reports whether the item carries tag exactly.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CategoryEntry groups the items of one category. Key is the lower-cased
// display name; items from both sections that share a key are merged.
type CategoryEntry struct {
	Key   string
	Name  string
	Items []MenuItem
}

// Index is the immutable search index built from a Menu.
type Index struct {
	items      []searchable
	categories []*CategoryEntry
	byKey      map[string]*CategoryEntry
}

// searchable carries an item with its normalized fields precomputed.
type searchable struct {
	item      MenuItem
	name      string
	nameWords []string
	desc      string
	category  string
	tags      string
}

func newSearchable(item MenuItem) searchable {
	name := Normalize(item.Name)
	return searchable{
		item:      item,
		name:      name,
		nameWords: strings.Fields(name),
		desc:      Normalize(item.Description),
		category:  Normalize(item.Category),
		tags:      Lower(strings.Join(item.Tags, " ")),
	}
}

// BuildIndex flattens menu into an ordered item list and a category table.
// Food is indexed before drinks, categories and items in source order.
func BuildIndex(menu *Menu) (*Index, error) {
	if menu == nil {
		return nil, ErrNilMenu
	}

	idx := &Index{byKey: make(map[string]*CategoryEntry)}

	sections := []struct {
		section    Section
		categories []RawCategory
	}{
		{SectionFood, menu.Food},
		{SectionDrinks, menu.Drinks},
	}

	for _, s := range sections {
		for i, cat := range s.categories {
			displayName := cat.Title
			if displayName == "" {
				displayName = cat.Key
			}
			displayName = strings.ReplaceAll(displayName, "_", " ")
			if strings.TrimSpace(displayName) == "" {
				return nil, domain.IndexError(fmt.Sprintf("%s category %d has neither key nor title", s.section, i), nil)
			}

			key := Lower(displayName)
			entry, ok := idx.byKey[key]
			if !ok {
				entry = &CategoryEntry{Key: key, Name: displayName}
				idx.byKey[key] = entry
				idx.categories = append(idx.categories, entry)
			}

			for _, raw := range cat.Items {
				item := MenuItem{
					Name:        raw.Name,
					Price:       raw.Price.Format(),
					Description: raw.Description,
					Category:    displayName,
					Section:     s.section,
					Tags:        append([]string(nil), raw.Tags...),
					AddOns:      raw.AddOns,
				}
				idx.items = append(idx.items, newSearchable(item))
				entry.Items = append(entry.Items, item)
			}
		}
	}

	return idx, nil
}

// Items returns every indexed item in index order.
func (x *Index) Items() []MenuItem {
	out := make([]MenuItem, len(x.items))
	for i, s := range x.items {
		out[i] = s.item
	}
	return out
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.items)
}

// Categories returns the category table in first-seen order.
func (x *Index) Categories() []CategoryEntry {
	out := make([]CategoryEntry, len(x.categories))
	for i, c := range x.categories {
		out[i] = *c
	}
	return out
}

// Category looks up a category by its key.
func (x *Index) Category(key string) (CategoryEntry, bool) {
	c, ok := x.byKey[key]
	if !ok {
		return CategoryEntry{}, false
	}
	return *c, true
}
