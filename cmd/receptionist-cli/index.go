package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/knowledge"
)

// categorySummary is one row of the index listing.
type categorySummary struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Items    int      `json:"items"`
	Sections []string `json:"sections"`
}

// summarizeCategories lists categories in index order with the sections
// their items come from.
func summarizeCategories(idx *knowledge.Index) []categorySummary {
	cats := idx.Categories()
	out := make([]categorySummary, len(cats))
	for i, c := range cats {
		seen := make(map[knowledge.Section]bool)
		var sections []string
		for _, item := range c.Items {
			if !seen[item.Section] {
				seen[item.Section] = true
				sections = append(sections, string(item.Section))
			}
		}
		out[i] = categorySummary{Key: c.Key, Name: c.Name, Items: len(c.Items), Sections: sections}
	}
	return out
}

// newIndexCmd creates the index subcommand.
func newIndexCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Show the menu index built from the content files",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeEngine, err := loadEngine(context.Background())
			if err != nil {
				return err
			}
			defer closeEngine()

			idx := engine.Index()

			if category != "" {
				entry, ok := idx.Category(strings.ToLower(strings.TrimSpace(category)))
				if !ok {
					ui.Warning("No category %q", category)
					return nil
				}
				if outputJSON {
					return printJSON(entry.Items)
				}
				rows := make([][]string, len(entry.Items))
				for i, item := range entry.Items {
					rows[i] = []string{item.Name, item.Price, string(item.Section)}
				}
				ui.Table([]string{"Item", "Price", "Section"}, rows)
				return nil
			}

			summary := summarizeCategories(idx)
			if outputJSON {
				return printJSON(summary)
			}

			rows := make([][]string, len(summary))
			for i, s := range summary {
				rows[i] = []string{s.Name, strconv.Itoa(s.Items), strings.Join(s.Sections, ", ")}
			}
			ui.Table([]string{"Category", "Items", "Sections"}, rows)
			ui.Info("%d items in %d categories", idx.Len(), len(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "list the items of one category")

	return cmd
}
