package knowledge

// faqStopWords are question words ignored when extracting FAQ keywords.
var faqStopWords = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "how": {},
	"does": {}, "do": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"your": {}, "you": {}, "they": {}, "their": {}, "there": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "about": {},
	"make": {}, "made": {}, "can": {}, "will": {}, "would": {},
	"should": {}, "could": {}, "are": {}, "were": {}, "been": {},
	"being": {}, "some": {}, "any": {}, "many": {}, "much": {},
	"more": {}, "most": {}, "also": {}, "than": {}, "into": {},
	"over": {}, "such": {}, "very": {}, "just": {}, "only": {},
}

// searchSkipWords are filler words dropped from menu search queries.
var searchSkipWords = map[string]struct{}{
	"how": {}, "much": {}, "the": {}, "is": {}, "are": {}, "do": {},
	"you": {}, "have": {}, "any": {}, "what": {}, "can": {}, "get": {},
	"for": {}, "price": {}, "cost": {}, "show": {}, "me": {}, "your": {},
	"serve": {}, "sell": {}, "offer": {}, "got": {}, "there": {},
	"about": {}, "tell": {}, "like": {}, "want": {}, "would": {},
	"could": {}, "some": {}, "please": {}, "with": {},
}

// CategoryAlias maps a query phrase to the category it implies.
type CategoryAlias struct {
	Alias  string
	Target string
}

// categoryAliases is scanned in order; the first alias found in the query wins.
var categoryAliases = []CategoryAlias{
	{"starters", "small chops"},
	{"appetizer", "small chops"},
	{"snack", "small chops"},
	{"fish", "seafood dishes"},
	{"prawn", "seafood dishes"},
	{"lobster", "seafood dishes"},
	{"crab", "seafood dishes"},
	{"shrimp", "seafood dishes"},
	{"jollof", "rice and stew"},
	{"fried rice", "rice and stew"},
	{"beef", "suya and meat"},
	{"chicken", "suya and meat"},
	{"lamb", "suya and meat"},
	{"goat", "suya and meat"},
	{"platter", "sharing"},
	{"share", "sharing"},
	{"side dish", "sides"},
	{"extra", "sides"},
	{"sweet", "desserts"},
	{"pudding", "desserts"},
	{"cake", "desserts"},
	{"ice cream", "desserts"},
	{"cocktail", "cocktails"},
	{"mixology", "cocktails"},
	{"mocktail", "mocktails"},
	{"non alcoholic", "mocktails"},
	{"virgin", "mocktails"},
	{"fresh juice", "fresh juice"},
	{"smoothie", "fresh juice"},
	{"lager", "beer and draft"},
	{"draft", "beer and draft"},
	{"ale", "beer and draft"},
	{"vodka", "spirits"},
	{"gin", "spirits"},
	{"rum", "spirits"},
	{"whisky", "spirits"},
	{"whiskey", "spirits"},
	{"brandy", "spirits"},
	{"cognac", "spirits"},
	{"champagne", "wine and champagne"},
	{"prosecco", "wine and champagne"},
	{"red wine", "wine and champagne"},
	{"white wine", "wine and champagne"},
	{"soda", "soft drinks"},
	{"coke", "soft drinks"},
	{"fanta", "soft drinks"},
	{"water", "soft drinks"},
}

// TagKeywords lists the query keywords that select items carrying Tag.
type TagKeywords struct {
	Tag      string
	Keywords []string
}

// tagKeywords is scanned in order; the first tag with a keyword in the query wins.
var tagKeywords = []TagKeywords{
	{"spicy", []string{"spicy", "hot", "pepper", "chili", "chilli"}},
	{"vegetarian", []string{"vegetarian", "veggie", "vegan", "plant based"}},
	{"seafood", []string{"seafood"}},
	{"grill", []string{"grill", "grilled", "charcoal", "bbq", "barbecue"}},
	{"contains-nuts", []string{"nut", "nuts", "peanut"}},
	{"contains-egg", []string{"egg"}},
}

// CategoryAliases returns a copy of the alias table in scan order.
func CategoryAliases() []CategoryAlias {
	return append([]CategoryAlias(nil), categoryAliases...)
}

// Tags returns a copy of the tag keyword table in scan order.
func Tags() []TagKeywords {
	out := make([]TagKeywords, len(tagKeywords))
	for i, tk := range tagKeywords {
		out[i] = TagKeywords{Tag: tk.Tag, Keywords: append([]string(nil), tk.Keywords...)}
	}
	return out
}

// DefaultOpeningTimes is the schedule used when site content has none.
func DefaultOpeningTimes() []OpeningTime {
	return []OpeningTime{
		{Days: "Monday – Thursday", Hours: "17:00 – 23:00"},
		{Days: "Friday", Hours: "13:00 – 23:00"},
		{Days: "Saturday", Hours: "13:00 – 23:00"},
		{Days: "Sunday", Hours: "13:00 – 22:00"},
	}
}

// DefaultContact returns the venue details used when site content has none.
func DefaultContact() Contact {
	return Contact{
		Phone:      "020 3345 3841",
		Email:      "info@monikarestaurant.com",
		Address:    "14 Deptford Broadway, London SE8 4PA",
		BookingURL: "https://web.dojo.app/create_booking/vendor/4w3KsIvZJOhkRjvfcYFI9-mNbTqGcKHCCwTTtEr_NhM_restaurant",
		ParkingURL: "https://maps.app.goo.gl/1ZHKEzsGW2fBqyNQ9",
		Station:    "Deptford Bridge (DLR)",
		Buses:      []string{"47", "53", "177", "199", "453"},
	}
}
