// Package knowledgetest provides a small in-code menu and FAQ set for tests.
package knowledgetest

import "github.com/monika-restaurant/receptionist/internal/knowledge"

// Menu returns a miniature menu covering bare and titled categories, numeric
// and text prices, tags, add-ons and a desserts bucket shared by both sections.
func Menu() *knowledge.Menu {
	return &knowledge.Menu{
		Food: []knowledge.RawCategory{
			{Key: "small_chops", Items: []knowledge.RawItem{
				{Name: "Puff Puff", Price: knowledge.NumericPrice(6), Description: "Sweet fried dough balls", Tags: []string{"vegetarian", "contains-egg"}},
				{Name: "Peppered Snails", Price: knowledge.NumericPrice(12), Description: "Giant snails in spicy pepper sauce", Tags: []string{"spicy"}},
				{Name: "Chicken Wings", Price: knowledge.NumericPrice(9), Description: "Charcoal grilled wings", Tags: []string{"grill"}},
			}},
			{Key: "seafood", Title: "Seafood Dishes", Items: []knowledge.RawItem{
				{Name: "Monika Fish", Price: knowledge.NumericPrice(28), Description: "Whole grilled croaker", Tags: []string{"seafood", "grill"}},
				{Name: "Lobster Thermidor", Price: knowledge.TextPrice("£45 – £60"), Description: "Half lobster, creamy sauce", Tags: []string{"seafood"}, AddOns: "Add fries £4"},
				{Name: "Garlic Prawns", Price: knowledge.NumericPrice(16), Description: "King prawns in garlic butter", Tags: []string{"seafood"}},
			}},
			{Key: "rice_and_stew", Items: []knowledge.RawItem{
				{Name: "Jollof Rice", Price: knowledge.NumericPrice(8), Description: "Smoky party jollof", Tags: []string{"vegetarian", "spicy"}},
				{Name: "Fried Rice", Price: knowledge.NumericPrice(8)},
				{Name: "Mac and Cheese", Price: knowledge.NumericPrice(7.5), Description: "Baked with three cheeses"},
			}},
			{Key: "desserts", Items: []knowledge.RawItem{
				{Name: "Chin Chin Sundae", Price: knowledge.NumericPrice(7)},
			}},
		},
		Drinks: []knowledge.RawCategory{
			{Key: "cocktails", Title: "Cocktails", Items: []knowledge.RawItem{
				{Name: "Monika Mojito", Price: knowledge.NumericPrice(11)},
				{Name: "Passion Martini", Price: knowledge.NumericPrice(12)},
				{Name: "Lagos Margarita", Price: knowledge.NumericPrice(12)},
				{Name: "Zobo Spritz", Price: knowledge.NumericPrice(10)},
				{Name: "Chapman Royale", Price: knowledge.NumericPrice(11)},
				{Name: "Deptford Sour", Price: knowledge.NumericPrice(12)},
				{Name: "Palm Punch", Price: knowledge.NumericPrice(10)},
				{Name: "Tiger Colada", Price: knowledge.NumericPrice(12)},
			}},
			{Key: "soft_drinks", Items: []knowledge.RawItem{
				{Name: "Coke", Price: knowledge.NumericPrice(3)},
				{Name: "Still Water", Price: knowledge.NumericPrice(2.5)},
			}},
			{Key: "desserts", Title: "Desserts", Items: []knowledge.RawItem{
				{Name: "Affogato", Price: knowledge.NumericPrice(6)},
			}},
		},
	}
}

// FAQs returns a handful of FAQs, including one without usable keywords.
func FAQs() []knowledge.FAQEntry {
	return []knowledge.FAQEntry{
		{Question: "What time do you open?", Answer: "We open at 17:00 on weekdays and 13:00 at weekends."},
		{Question: "Do you cater for dietary requirements?", Answer: "Yes, please tell your server about any allergies."},
		{Question: "Is there a dress code?", Answer: "Smart casual."},
		{Question: "Can I bring my own cake?", Answer: "Yes, a small cakeage fee applies."},
		{Question: "Who are you?", Answer: "unreachable"},
	}
}

// Index builds the sample menu, panicking on failure.
func Index() *knowledge.Index {
	idx, err := knowledge.BuildIndex(Menu())
	if err != nil {
		panic(err)
	}
	return idx
}
