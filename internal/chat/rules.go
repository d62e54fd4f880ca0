package chat

import (
	"regexp"
	"strings"
)

// Rule is one entry of the dispatcher chain. Match reports false to let the
// next rule try.
type Rule struct {
	Name  string
	Match func(t *turn) (Reply, bool)
}

// turn is the input every rule sees.
type turn struct {
	lower string // lower-cased utterance, used by keyword patterns
	norm  string // normalized utterance, used by lookups
	conv  *Conversation
}

// Keyword patterns run against the lower-cased utterance.
var (
	greetingPattern     = regexp.MustCompile(`^(hi|hey|hello|good\s+(morning|afternoon|evening)|hiya|yo|sup)\b`)
	thanksPattern       = regexp.MustCompile(`\b(thanks?|thank\s*you|cheers|ta|great|perfect|awesome)\b`)
	goodbyePattern      = regexp.MustCompile(`^(bye|goodbye|see\s*ya|later|good\s*night)\b`)
	hoursPattern        = regexp.MustCompile(`\b(hours?|open(ing)?|clos(e|ed|ing)|times?|when|schedule)\b`)
	reservationPattern  = regexp.MustCompile(`\b(reserv|book(ing)?|table)\b`)
	contactPattern      = regexp.MustCompile(`\b(phone|call(ing)?|number|contact|reach|email)\b`)
	locationPattern     = regexp.MustCompile(`\b(where|location|address|direction|find\s*us|map|parking|drive|transit|bus|train|dlr)\b`)
	privateHirePattern  = regexp.MustCompile(`\b(private|hire|event|party|birthday|wedding|corporate|celebration|function)\b`)
	pricePattern        = regexp.MustCompile(`\b(how\s*much|price|cost|cheap|expensive)\b`)
	availabilityPattern = regexp.MustCompile(`\b(do\s*you\s*(have|serve|sell|offer|do)|have\s*you\s*got|is\s*there|any)\b`)
	foodPattern         = regexp.MustCompile(`\b(menu|food|drink|eat|dish|starter|main|dessert|cocktail|wine|beer|juice|mojito|margarita)\b`)
	followUpPattern     = regexp.MustCompile(`\b(what\s*else|more|anything\s*else|other|also|another)\b`)
	storyPattern        = regexp.MustCompile(`\b(story|about|history|name|who|805|monika)\b`)
	galleryPattern      = regexp.MustCompile(`\b(photo|picture|image|gallery|see|look|vibe|atmosphere|inside)\b`)
)

const (
	priceResults        = 3
	availabilityResults = 4
	categoryResults     = 6
	tagResults          = 5
	browseResults       = 5
	followUpResults     = 6
	lastResortResults   = 3
)

// buildRules returns the dispatcher chain in priority order.
func (e *Engine) buildRules() []Rule {
	return []Rule{
		{"greeting", static(greetingPattern, welcomeText, "")},
		{"thanks", static(thanksPattern, thanksText, "")},
		{"goodbye", static(goodbyePattern, goodbyeText, "")},
		{"faq", e.matchFAQ},
		{"hours", static(hoursPattern, e.tmpl.openingHours(), TopicHours)},
		{"reservation", static(reservationPattern, e.tmpl.reservation(), TopicReservation)},
		{"contact", static(contactPattern, e.tmpl.contact(), TopicContact)},
		{"location", static(locationPattern, e.tmpl.location(), TopicLocation)},
		{"private-hire", static(privateHirePattern, e.tmpl.privateHire(), TopicPrivateHire)},
		{"price", e.matchPrice},
		{"availability", e.matchAvailability},
		{"category", e.matchCategory},
		{"tag", e.matchTag},
		{"menu-browse", e.matchBrowse},
		{"follow-up", e.matchFollowUp},
		{"story", static(storyPattern, storyText, TopicStory)},
		{"gallery", static(galleryPattern, galleryText, TopicGallery)},
		{"menu-search", e.matchLastResort},
		{"fallback", e.matchFallback},
	}
}

// static answers with a fixed text whenever pattern matches.
func static(pattern *regexp.Regexp, text, topic string) func(*turn) (Reply, bool) {
	return func(t *turn) (Reply, bool) {
		if !pattern.MatchString(t.lower) {
			return Reply{}, false
		}
		return Reply{Text: text, Topic: topic}, true
	}
}

func (e *Engine) matchFAQ(t *turn) (Reply, bool) {
	answer, ok := e.faqs.Match(t.lower)
	if !ok {
		return Reply{}, false
	}
	return Reply{Text: answer, Topic: TopicFAQ}, true
}

// matchPrice always answers once the price pattern matches, with a
// not-found message when the search is empty.
func (e *Engine) matchPrice(t *turn) (Reply, bool) {
	if !pricePattern.MatchString(t.lower) {
		return Reply{}, false
	}
	found := e.index.Search(t.norm, true)
	if len(found) == 0 {
		return Reply{Text: notFoundText}, true
	}
	if len(found) > priceResults {
		found = found[:priceResults]
	}
	blocks := make([]string, len(found))
	for i, it := range found {
		blocks[i] = formatItem(it)
	}
	return Reply{Text: "Here's what I found:\n\n" + strings.Join(blocks, "\n\n"), Topic: TopicMenu}, true
}

// matchAvailability falls through when nothing is found.
func (e *Engine) matchAvailability(t *turn) (Reply, bool) {
	if !availabilityPattern.MatchString(t.lower) {
		return Reply{}, false
	}
	found := e.index.Search(t.norm, true)
	if len(found) == 0 {
		return Reply{}, false
	}
	text := "Yes! Here's what we have:\n\n" + bulletList(found, availabilityResults, priceLine) +
		"\n\nSee our full menu: " + menuPage
	return Reply{Text: text, Topic: TopicMenu}, true
}

func (e *Engine) matchCategory(t *turn) (Reply, bool) {
	cat, ok := e.index.MatchCategory(t.norm)
	if !ok {
		return Reply{}, false
	}
	text := "🍽️ Our " + cat.Name + ":\n\n" + bulletList(cat.Items, categoryResults, priceLine) +
		overflow(len(cat.Items), categoryResults) + "\n\nFull menu: " + menuPage
	return Reply{Text: text, Topic: cat.Key}, true
}

func (e *Engine) matchTag(t *turn) (Reply, bool) {
	found := e.index.MatchTag(t.norm)
	if len(found) == 0 {
		return Reply{}, false
	}
	text := "Here are some options:\n\n" + bulletList(found, tagResults, priceLineWithCategory) +
		overflow(len(found), tagResults) + "\n\nFull menu: " + menuPage
	return Reply{Text: text, Topic: TopicMenu}, true
}

// matchBrowse lists loose search hits, or the category overview without
// touching the topic when there are none.
func (e *Engine) matchBrowse(t *turn) (Reply, bool) {
	if !foodPattern.MatchString(t.lower) {
		return Reply{}, false
	}
	found := e.index.Search(t.norm, false)
	if len(found) > 0 {
		text := "Here are some items you might like:\n\n" + bulletList(found, browseResults, priceLine) +
			"\n\nFull menu: " + menuPage
		return Reply{Text: text, Topic: TopicMenu}, true
	}

	cats := e.index.Categories()
	lines := make([]string, len(cats))
	for i, c := range cats {
		lines[i] = "• " + c.Name
	}
	text := "🍽️ Our menu features:\n\n" + strings.Join(lines, "\n") + "\n\nAsk about any category or browse: " + menuPage
	return Reply{Text: text}, true
}

// matchFollowUp continues the last category shown. When the category has
// more items than a category listing shows, it lists the ones after them.
func (e *Engine) matchFollowUp(t *turn) (Reply, bool) {
	if t.conv.LastTopic == "" || !followUpPattern.MatchString(t.lower) {
		return Reply{}, false
	}
	cat, ok := e.index.Category(t.conv.LastTopic)
	if !ok || len(cat.Items) == 0 {
		return Reply{}, false
	}

	items := cat.Items
	if len(items) > categoryResults {
		items = items[categoryResults:]
	}
	text := "More from our " + cat.Name + ":\n\n" + bulletList(items, followUpResults, priceLine) +
		"\n\nFull menu: " + menuPage
	return Reply{Text: text}, true
}

func (e *Engine) matchLastResort(t *turn) (Reply, bool) {
	found := e.index.Search(t.norm, false)
	if len(found) == 0 {
		return Reply{}, false
	}
	text := "I found these on our menu:\n\n" + bulletList(found, lastResortResults, priceLineWithCategory) +
		"\n\nFull menu: " + menuPage
	return Reply{Text: text, Topic: TopicMenu}, true
}

func (e *Engine) matchFallback(*turn) (Reply, bool) {
	return Reply{Text: e.tmpl.fallback()}, true
}
