package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/cache"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/knowledge/knowledgetest"
	"github.com/monika-restaurant/receptionist/internal/observability"
	"github.com/monika-restaurant/receptionist/internal/session"
)

func newTestSession(t *testing.T) *chat.Session {
	t.Helper()
	engine, err := chat.NewEngine(chat.EngineConfig{Index: knowledgetest.Index()})
	require.NoError(t, err)
	return chat.NewSession(engine)
}

// useTestUI points the package UI at buffers for the duration of a test.
func useTestUI(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevUI, prevLogger, prevJSON := ui, logger, outputJSON
	ui = &UI{out: &out, errOut: &errOut, noColor: true}
	logger = observability.NewNopLogger()
	outputJSON = false
	t.Cleanup(func() { ui, logger, outputJSON = prevUI, prevLogger, prevJSON })
	return &out, &errOut
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		line string
		kind inputKind
		text string
	}{
		{"", inputSkip, ""},
		{"   ", inputSkip, ""},
		{"do you have lobster", inputUtterance, "do you have lobster"},
		{"  hi  ", inputUtterance, "hi"},
		{"/quit", inputQuit, ""},
		{"/EXIT", inputQuit, ""},
		{"/reset", inputReset, ""},
		{"/help", inputHelp, ""},
		{"/menu", inputUtterance, "Can I see the menu?"},
		{"/hours", inputUtterance, "What are your opening hours?"},
		{"/unknown", inputUtterance, "/unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			kind, text := parseInput(tc.line)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.text, text)
		})
	}
}

func TestReadUtterances(t *testing.T) {
	in := strings.NewReader("# visitor one\nhi\n\n  desserts please  \nanything else\n---\n# visitor two\nanything else\n")

	lines, err := readUtterances(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "desserts please", "anything else", "---", "anything else"}, lines)
}

func TestReplay(t *testing.T) {
	conv := newTestSession(t)

	var ticks int
	report := replay(context.Background(), conv, []string{"hi", "desserts please", "anything else", "---", "anything else"}, func() { ticks++ })

	assert.Equal(t, 5, ticks)
	require.Len(t, report.Turns, 4)
	assert.Equal(t, "greeting", report.Turns[0].Rule)
	assert.Equal(t, "category", report.Turns[1].Rule)
	assert.Equal(t, "follow-up", report.Turns[2].Rule)
	assert.NotEqual(t, "follow-up", report.Turns[3].Rule, "reset should forget the topic")

	total := 0
	for _, rc := range report.Rules {
		total += rc.Count
	}
	assert.Equal(t, 4, total)
}

func TestHistogram(t *testing.T) {
	rows := histogram(map[string]int{"faq": 2, "greeting": 5, "category": 2, "fallback": 1})
	assert.Equal(t, []ruleCount{
		{Rule: "greeting", Count: 5},
		{Rule: "category", Count: 2},
		{Rule: "faq", Count: 2},
		{Rule: "fallback", Count: 1},
	}, rows)

	assert.Empty(t, histogram(nil))
}

func TestSummarizeCategories(t *testing.T) {
	summary := summarizeCategories(knowledgetest.Index())
	require.NotEmpty(t, summary)

	var desserts *categorySummary
	total := 0
	for i := range summary {
		total += summary[i].Items
		if summary[i].Key == "desserts" {
			desserts = &summary[i]
		}
	}

	require.NotNil(t, desserts)
	assert.Equal(t, 2, desserts.Items)
	assert.Equal(t, []string{"food", "drinks"}, desserts.Sections)
	assert.Equal(t, knowledgetest.Index().Len(), total)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "£45…", truncate("£45 – £60", 4))
	assert.Equal(t, "12345678", shortID("12345678-aaaa"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestUI_Table(t *testing.T) {
	out, _ := useTestUI(t)

	ui.Table([]string{"Rule", "Turns"}, [][]string{{"greeting", "5"}, {"faq", "12"}})

	want := "" +
		"+----------+-------+\n" +
		"| Rule     | Turns |\n" +
		"+----------+-------+\n" +
		"| greeting | 5     |\n" +
		"| faq      | 12    |\n" +
		"+----------+-------+\n"
	assert.Equal(t, want, out.String())
}

func TestUI_JSONModeIsSilent(t *testing.T) {
	out, errOut := useTestUI(t)
	ui.jsonMode = true

	ui.Success("done")
	ui.Error("failed")
	ui.Bot("hello")
	ui.Table([]string{"a"}, [][]string{{"b"}})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestRunREPL(t *testing.T) {
	out, _ := useTestUI(t)

	var delays int
	in := strings.NewReader("desserts please\nanything else\n/reset\n/help\n/quit\nhi\n")
	require.NoError(t, runREPL(context.Background(), in, newTestSession(t), func() { delays++ }))

	text := out.String()
	assert.Equal(t, 2, delays, "only utterances wait for the typing delay")
	assert.True(t, strings.HasPrefix(text, "monika> Hello!"))
	assert.Contains(t, text, "monika> More from our desserts:")
	assert.Contains(t, text, "✓ Conversation reset")
	assert.Contains(t, text, "| /reserve ")
	assert.Equal(t, 1, strings.Count(text, "Welcome to Monika"), "input after /quit is not answered")
}

func TestPurgeSessions(t *testing.T) {
	out, _ := useTestUI(t)
	ctx := context.Background()

	mem := cache.NewMemoryClient(10)
	t.Cleanup(func() { _ = mem.Close() })
	store := session.NewStore(mem, time.Minute)

	for _, id := range []string{"a", "b"} {
		require.NoError(t, store.Save(ctx, id, &chat.Conversation{LastTopic: "cocktails"}))
	}
	require.NoError(t, mem.Set(ctx, "other", []byte("keep"), 0))

	require.NoError(t, purgeSessions(ctx, store))
	assert.Contains(t, out.String(), "✓ All sessions purged")

	conv, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, conv.LastTopic)
	_, err = mem.Get(ctx, "other")
	assert.NoError(t, err, "keys outside the session namespace survive")
}

func TestPrintEvent(t *testing.T) {
	out, _ := useTestUI(t)

	ev := analytics.NewEvent(analytics.EventChatTurn)
	ev.SessionID, ev.Rule, ev.Utterance = "s1", "faq", "is there a dress code"
	printEvent(ev)

	text := out.String()
	assert.Contains(t, text, ev.ID)
	assert.Contains(t, text, "faq")
	assert.Contains(t, text, "is there a dress code")
	assert.NotContains(t, text, "Topic:")
}
