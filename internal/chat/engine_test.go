package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/content"
	"github.com/monika-restaurant/receptionist/internal/knowledge"
	"github.com/monika-restaurant/receptionist/internal/knowledge/knowledgetest"
)

type captureRecorder struct {
	mu     sync.Mutex
	events []analytics.Event
	err    error
}

func (r *captureRecorder) Record(_ context.Context, ev analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{
		Index: knowledgetest.Index(),
		FAQs:  knowledge.NewFAQMatcher(knowledgetest.FAQs()),
	})
	require.NoError(t, err)
	return e
}

func TestNewEngine_RequiresIndex(t *testing.T) {
	_, err := NewEngine(EngineConfig{})
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestBuildEngine(t *testing.T) {
	e, err := BuildEngine(&content.Bundle{Menu: knowledgetest.Menu(), FAQs: knowledgetest.FAQs()}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 21, e.Index().Len())

	_, err = BuildEngine(&content.Bundle{}, nil, nil)
	assert.ErrorIs(t, err, knowledge.ErrNilMenu)

	_, err = BuildEngine(nil, nil, nil)
	assert.ErrorIs(t, err, knowledge.ErrNilMenu)
}

func TestEngine_RuleOrder(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, []string{
		"greeting", "thanks", "goodbye", "faq", "hours", "reservation", "contact",
		"location", "private-hire", "price", "availability", "category", "tag",
		"menu-browse", "follow-up", "story", "gallery", "menu-search", "fallback",
	}, e.Rules())
}

func TestEngine_Rules(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		utterance string
		rule      string
		topic     string
		contains  []string
	}{
		{"greeting", "hi", "greeting", "", []string{"Hello! 👋 Welcome to Monika Restaurant."}},
		{"greeting wins over later keywords", "Hey there, how much is the jollof?", "greeting", "", nil},
		{"thanks", "thanks so much", "thanks", "", []string{"You're welcome!"}},
		{"goodbye", "bye for now", "goodbye", "", []string{"Goodbye! 👋"}},
		{"faq", "Is there a dress code?", "faq", TopicFAQ, []string{"Smart casual."}},
		{"hours", "What are your opening hours?", "hours", TopicHours, []string{"🕐 Our opening hours:"}},
		{"reservation", "I'd like to book a table", "reservation", TopicReservation, []string{"https://web.dojo.app/create_booking/", "Or call us on 020 3345 3841."}},
		{"contact", "what's your phone number", "contact", TopicContact, []string{"📧 Email: info@monikarestaurant.com"}},
		{"location", "where can I park", "location", TopicLocation, []string{"Deptford Bridge (DLR)", "47, 53, 177, 199, 453", "/venue.html"}},
		{"private hire", "can we hire the venue for a birthday", "private-hire", TopicPrivateHire, []string{"✓ Corporate events", "/private-hire.html"}},
		{"price", "how much is the jollof rice", "price", TopicMenu, []string{"Here's what I found:"}},
		{"price not found", "how much is the caviar", "price", "", []string{"I couldn't find that specific item."}},
		{"availability", "do you have lobster", "availability", TopicMenu, []string{"Yes! Here's what we have:", "• Lobster Thermidor — £45 – £60"}},
		{"availability falls through", "do you have anything vegan", "tag", TopicMenu, []string{"• Puff Puff — £6 (small chops)"}},
		{"category", "show me your cocktails", "category", "cocktails", []string{"🍽️ Our Cocktails:"}},
		{"tag", "something spicy", "tag", TopicMenu, []string{"Here are some options:", "• Peppered Snails — £12 (small chops)"}},
		{"browse hits", "i want a mojito from the drink list", "menu-browse", TopicMenu, []string{"Here are some items you might like:", "• Monika Mojito — £11"}},
		{"browse overview", "can i see the menu", "menu-browse", "", []string{"🍽️ Our menu features:", "• Seafood Dishes"}},
		{"story", "who is monika", "story", TopicStory, []string{"Monika fish", "/story.html"}},
		{"gallery", "can i see some pictures", "gallery", TopicGallery, []string{"/gallery.html"}},
		{"last resort search", "palm", "menu-search", TopicMenu, []string{"I found these on our menu:", "• Palm Punch — £10 (Cocktails)"}},
		{"fallback", "xyzzy", "fallback", "", []string{"I'm not sure I understood that", "Or call us: 020 3345 3841"}},
		{"empty input", "", "fallback", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv := &Conversation{}
			reply := e.Reply(context.Background(), conv, tc.utterance)

			assert.Equal(t, tc.rule, reply.Rule)
			assert.Equal(t, tc.topic, reply.Topic)
			assert.Equal(t, tc.topic, conv.LastTopic)
			assert.NotEmpty(t, reply.Text)
			for _, want := range tc.contains {
				assert.Contains(t, reply.Text, want)
			}
		})
	}
}

func TestEngine_Welcome(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Reply(context.Background(), nil, "hi")
	assert.True(t, strings.HasPrefix(reply.Text, "Hello! 👋 Welcome to Monika Restaurant. How can I help you today?"))
	for _, topic := range []string{"• Our menu & prices", "• Opening hours", "• Reservations", "• Private hire", "• Location & parking"} {
		assert.Contains(t, reply.Text, topic)
	}
}

func TestEngine_OpeningHoursInOrder(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Reply(context.Background(), &Conversation{}, "what are your opening hours")
	assert.Equal(t, "🕐 Our opening hours:\n\n"+
		"• Monday – Thursday: 17:00 – 23:00\n"+
		"• Friday: 13:00 – 23:00\n"+
		"• Saturday: 13:00 – 23:00\n"+
		"• Sunday: 13:00 – 22:00\n\n"+
		"We recommend booking ahead for weekends!", reply.Text)
}

func TestEngine_PriceListing(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Reply(context.Background(), &Conversation{}, "how much is the jollof rice")
	assert.Equal(t, "Here's what I found:\n\n"+
		"• Jollof Rice — £8\n  Smoky party jollof\n\n"+
		"• Fried Rice — £8", reply.Text)

	reply = e.Reply(context.Background(), &Conversation{}, "what's the price of the lobster")
	assert.Contains(t, reply.Text, "• Lobster Thermidor — £45 – £60\n  Half lobster, creamy sauce\n  🔸 Add fries £4")
}

func TestEngine_AvailabilityListing(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Reply(context.Background(), &Conversation{}, "do you have lobster")
	assert.Equal(t, "Yes! Here's what we have:\n\n• Lobster Thermidor — £45 – £60\n\nSee our full menu: /menu.html", reply.Text)
}

func TestEngine_CategoryThenFollowUp(t *testing.T) {
	e := newTestEngine(t)
	conv := &Conversation{}

	first := e.Reply(context.Background(), conv, "show me your cocktails")
	assert.Equal(t, "category", first.Rule)
	assert.Equal(t, "🍽️ Our Cocktails:\n\n"+
		"• Monika Mojito — £11\n"+
		"• Passion Martini — £12\n"+
		"• Lagos Margarita — £12\n"+
		"• Zobo Spritz — £10\n"+
		"• Chapman Royale — £11\n"+
		"• Deptford Sour — £12\n\n"+
		"...and 2 more!\n\n"+
		"Full menu: /menu.html", first.Text)
	assert.Equal(t, "cocktails", conv.LastTopic)

	second := e.Reply(context.Background(), conv, "what else")
	assert.Equal(t, "follow-up", second.Rule)
	assert.Equal(t, "More from our Cocktails:\n\n• Palm Punch — £10\n• Tiger Colada — £12\n\nFull menu: /menu.html", second.Text)
	assert.Equal(t, "", second.Topic)
	assert.Equal(t, "cocktails", conv.LastTopic)
}

func TestEngine_FollowUpSmallCategory(t *testing.T) {
	e := newTestEngine(t)
	conv := &Conversation{}

	e.Reply(context.Background(), conv, "desserts please")
	require.Equal(t, "desserts", conv.LastTopic)

	reply := e.Reply(context.Background(), conv, "anything else")
	assert.Equal(t, "follow-up", reply.Rule)
	assert.Equal(t, "More from our desserts:\n\n• Chin Chin Sundae — £7\n• Affogato — £6\n\nFull menu: /menu.html", reply.Text)
}

func TestEngine_FollowUpNeedsTopic(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Reply(context.Background(), &Conversation{}, "what else")
	assert.NotEqual(t, "follow-up", reply.Rule)
	assert.Equal(t, "fallback", reply.Rule)

	// A non-category topic does not resolve either.
	reply = e.Reply(context.Background(), &Conversation{LastTopic: TopicHours}, "what else")
	assert.Equal(t, "fallback", reply.Rule)
}

func TestEngine_OverviewKeepsTopic(t *testing.T) {
	e := newTestEngine(t)
	conv := &Conversation{LastTopic: TopicHours}

	reply := e.Reply(context.Background(), conv, "can i see the menu")
	assert.Equal(t, "menu-browse", reply.Rule)
	assert.Equal(t, TopicHours, conv.LastTopic)
	assert.Equal(t, "🍽️ Our menu features:\n\n"+
		"• small chops\n• Seafood Dishes\n• rice and stew\n• desserts\n• Cocktails\n• soft drinks\n\n"+
		"Ask about any category or browse: /menu.html", reply.Text)
}

func TestEngine_ConversationsAreIsolated(t *testing.T) {
	e := newTestEngine(t)
	a, b := &Conversation{}, &Conversation{}

	e.Reply(context.Background(), a, "show me your cocktails")
	assert.Equal(t, "follow-up", e.Reply(context.Background(), a, "what else").Rule)
	assert.Equal(t, "fallback", e.Reply(context.Background(), b, "what else").Rule)
	assert.Empty(t, b.LastTopic)
}

func TestEngine_SiteContent(t *testing.T) {
	e, err := NewEngine(EngineConfig{
		Index: knowledgetest.Index(),
		Site: &knowledge.SiteContent{
			OpeningTimes: []knowledge.OpeningTime{{Days: "Every day", Hours: "12:00 – 00:00"}},
			Contact:      knowledge.Contact{Phone: "020 0000 0000"},
		},
	})
	require.NoError(t, err)

	hours := e.Reply(context.Background(), nil, "when are you open")
	assert.Contains(t, hours.Text, "• Every day: 12:00 – 00:00")
	assert.NotContains(t, hours.Text, "Monday")

	contact := e.Reply(context.Background(), nil, "phone")
	assert.Contains(t, contact.Text, "020 0000 0000")
	assert.Contains(t, contact.Text, "info@monikarestaurant.com")
}

func TestEngine_RecordsTurns(t *testing.T) {
	rec := &captureRecorder{}
	e, err := NewEngine(EngineConfig{Index: knowledgetest.Index(), Recorder: rec})
	require.NoError(t, err)

	ctx := analytics.ContextWithSessionID(context.Background(), "session-1")
	e.Reply(ctx, &Conversation{}, "show me your cocktails")

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, analytics.EventChatTurn, ev.Name)
	assert.Equal(t, "session-1", ev.SessionID)
	assert.Equal(t, "category", ev.Rule)
	assert.Equal(t, "cocktails", ev.Topic)
	assert.Equal(t, "show me your cocktails", ev.Utterance)
	assert.NotEmpty(t, ev.ID)
}

func TestEngine_RecorderFailureKeepsReply(t *testing.T) {
	rec := &captureRecorder{err: errors.New("disk full")}
	e, err := NewEngine(EngineConfig{Index: knowledgetest.Index(), Recorder: rec})
	require.NoError(t, err)

	reply := e.Reply(context.Background(), &Conversation{}, "hi")
	assert.Equal(t, "greeting", reply.Rule)
	assert.Equal(t, welcomeText, reply.Text)
}
