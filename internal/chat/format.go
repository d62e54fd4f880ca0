package chat

import (
	"fmt"
	"strings"

	"github.com/monika-restaurant/receptionist/internal/knowledge"
)

// formatItem renders an item with its description and add-ons.
func formatItem(item knowledge.MenuItem) string {
	text := fmt.Sprintf("• %s — %s", item.Name, item.Price)
	if item.Description != "" {
		text += "\n  " + item.Description
	}
	if item.AddOns != "" {
		text += "\n  🔸 " + item.AddOns
	}
	return text
}

func priceLine(item knowledge.MenuItem) string {
	return fmt.Sprintf("• %s — %s", item.Name, item.Price)
}

func priceLineWithCategory(item knowledge.MenuItem) string {
	return fmt.Sprintf("• %s — %s (%s)", item.Name, item.Price, item.Category)
}

// bulletList renders at most limit items with render, one per line.
func bulletList(items []knowledge.MenuItem, limit int, render func(knowledge.MenuItem) string) string {
	if len(items) > limit {
		items = items[:limit]
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = render(it)
	}
	return strings.Join(lines, "\n")
}

// overflow returns the "...and N more!" suffix when items exceed shown.
func overflow(total, shown int) string {
	if total <= shown {
		return ""
	}
	return fmt.Sprintf("\n\n...and %d more!", total-shown)
}
