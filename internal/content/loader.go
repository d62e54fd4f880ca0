// Package content loads the FAQ, menu and site content tables from disk.
//
// Files may be JSON or YAML. Both are decoded through yaml.v3 nodes so that
// the order of menu categories in the source is kept.
package content

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/monika-restaurant/receptionist/internal/config"
	"github.com/monika-restaurant/receptionist/internal/domain"
	"github.com/monika-restaurant/receptionist/internal/knowledge"
)

// Bundle is everything the response engine is built from.
type Bundle struct {
	FAQs []knowledge.FAQEntry
	Menu *knowledge.Menu
	Site *knowledge.SiteContent // nil when no site content is configured
}

// LoadAll loads the three content tables named in cfg. A missing or
// unconfigured site file is not an error.
func LoadAll(cfg config.ContentConfig) (*Bundle, error) {
	faqs, err := LoadFAQs(cfg.FAQsPath)
	if err != nil {
		return nil, err
	}

	menu, err := LoadMenu(cfg.MenuPath)
	if err != nil {
		return nil, err
	}

	var site *knowledge.SiteContent
	if cfg.SitePath != "" {
		site, err = LoadSite(cfg.SitePath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return &Bundle{FAQs: faqs, Menu: menu, Site: site}, nil
}

// LoadFAQs reads an FAQ list file.
func LoadFAQs(path string) ([]knowledge.FAQEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError("read faqs "+path, err)
	}
	faqs, err := ParseFAQs(data)
	if err != nil {
		return nil, domain.ContentError("load faqs "+path, err)
	}
	return faqs, nil
}

// LoadMenu reads a menu file.
func LoadMenu(path string) (*knowledge.Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError("read menu "+path, err)
	}
	menu, err := ParseMenu(data)
	if err != nil {
		return nil, domain.ContentError("load menu "+path, err)
	}
	return menu, nil
}

// LoadSite reads a site content file.
func LoadSite(path string) (*knowledge.SiteContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError("read site content "+path, err)
	}
	site, err := ParseSite(data)
	if err != nil {
		return nil, domain.ContentError("load site content "+path, err)
	}
	return site, nil
}

// ParseFAQs decodes a sequence of {question, answer} entries.
func ParseFAQs(data []byte) ([]knowledge.FAQEntry, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, invalid("faqs", "document is empty")
	}
	if root.Kind != yaml.SequenceNode {
		return nil, invalid("faqs", "expected a list")
	}

	faqs := make([]knowledge.FAQEntry, 0, len(root.Content))
	for i, n := range root.Content {
		path := fmt.Sprintf("faqs[%d]", i)
		if n.Kind != yaml.MappingNode {
			return nil, invalid(path, "expected an object")
		}
		var faq knowledge.FAQEntry
		if err := n.Decode(&faq); err != nil {
			return nil, domain.ValidationError(path, err)
		}
		if faq.Question == "" || faq.Answer == "" {
			return nil, invalid(path, "question and answer are required")
		}
		faqs = append(faqs, faq)
	}
	return faqs, nil
}

// ParseMenu decodes a {food, drinks} menu table. Each section maps a category
// key to either a bare item list or an object with an optional title and an
// items list.
func ParseMenu(data []byte) (*knowledge.Menu, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, invalid("menu", "expected an object")
	}

	menu := &knowledge.Menu{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		var dst *[]knowledge.RawCategory
		switch key {
		case string(knowledge.SectionFood):
			dst = &menu.Food
		case string(knowledge.SectionDrinks):
			dst = &menu.Drinks
		default:
			continue
		}
		cats, err := parseSection(key, val)
		if err != nil {
			return nil, err
		}
		*dst = cats
	}
	return menu, nil
}

func parseSection(section string, n *yaml.Node) ([]knowledge.RawCategory, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, invalid(section, "expected an object of categories")
	}

	cats := make([]knowledge.RawCategory, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		path := section + "." + key
		cat := knowledge.RawCategory{Key: key}

		itemsNode := n.Content[i+1]
		switch itemsNode.Kind {
		case yaml.SequenceNode:
		case yaml.MappingNode:
			var title string
			itemsNode, title = categoryFields(itemsNode)
			cat.Title = title
		default:
			return nil, invalid(path, "expected a list of items or an object with items")
		}

		if itemsNode != nil {
			if itemsNode.Kind != yaml.SequenceNode {
				return nil, invalid(path+".items", "expected a list")
			}
			for j, in := range itemsNode.Content {
				item, err := parseItem(fmt.Sprintf("%s[%d]", path, j), in)
				if err != nil {
					return nil, err
				}
				cat.Items = append(cat.Items, item)
			}
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func categoryFields(n *yaml.Node) (items *yaml.Node, title string) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "title":
			title = n.Content[i+1].Value
		case "items":
			if !isNull(n.Content[i+1]) {
				items = n.Content[i+1]
			}
		}
	}
	return items, title
}

func parseItem(path string, n *yaml.Node) (knowledge.RawItem, error) {
	if n.Kind != yaml.MappingNode {
		return knowledge.RawItem{}, invalid(path, "expected an object")
	}

	var item knowledge.RawItem
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch key {
		case "name":
			item.Name = val.Value
		case "price":
			price, err := parsePrice(path+".price", val)
			if err != nil {
				return knowledge.RawItem{}, err
			}
			item.Price = price
		case "description":
			item.Description = val.Value
		case "addOns":
			item.AddOns = val.Value
		case "tags":
			if isNull(val) {
				continue
			}
			if err := val.Decode(&item.Tags); err != nil {
				return knowledge.RawItem{}, domain.ValidationError(path+".tags", err)
			}
		}
	}

	if item.Name == "" {
		return knowledge.RawItem{}, invalid(path, "missing name")
	}
	return item, nil
}

// parsePrice keeps numbers numeric and passes anything quoted through as text.
func parsePrice(path string, n *yaml.Node) (knowledge.Price, error) {
	if isNull(n) {
		return knowledge.Price{}, nil
	}
	if n.Kind != yaml.ScalarNode {
		return knowledge.Price{}, invalid(path, "expected a number or text")
	}
	switch n.Tag {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return knowledge.Price{}, domain.ValidationError(path, err)
		}
		return knowledge.NumericPrice(v), nil
	default:
		return knowledge.TextPrice(n.Value), nil
	}
}

// ParseSite decodes the optional site content table.
func ParseSite(data []byte) (*knowledge.SiteContent, error) {
	var doc struct {
		Global struct {
			OpeningTimes []knowledge.OpeningTime `yaml:"openingTimes"`
			Contact      knowledge.Contact       `yaml:"contact"`
		} `yaml:"global"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.ValidationError("site content", err)
	}

	for i, ot := range doc.Global.OpeningTimes {
		if ot.Days == "" || ot.Hours == "" {
			return nil, invalid(fmt.Sprintf("global.openingTimes[%d]", i), "days and hours are required")
		}
	}

	return &knowledge.SiteContent{
		OpeningTimes: doc.Global.OpeningTimes,
		Contact:      doc.Global.Contact,
	}, nil
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.ValidationError("decode document", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func invalid(path, msg string) error {
	return domain.ValidationError(path+": "+msg, nil)
}
