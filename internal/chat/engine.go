// Package chat implements the receptionist's response dispatcher: an ordered
// chain of rules turning an utterance into a canned reply.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/content"
	"github.com/monika-restaurant/receptionist/internal/knowledge"
	"github.com/monika-restaurant/receptionist/internal/observability"
)

// ErrNoIndex is returned when an engine is configured without a menu index.
var ErrNoIndex = errors.New("chat engine requires a menu index")

// Reply is the outcome of one turn.
type Reply struct {
	Text  string `json:"reply"`
	Rule  string `json:"rule"`
	Topic string `json:"topic,omitempty"` // topic set by this turn, empty when unchanged
}

// EngineConfig holds everything an Engine is built from.
type EngineConfig struct {
	Index    *knowledge.Index
	FAQs     *knowledge.FAQMatcher
	Site     *knowledge.SiteContent // optional
	Logger   *observability.Logger  // optional
	Recorder analytics.Recorder     // optional
}

// Engine answers utterances. It is safe for concurrent use; per-session
// state lives in the Conversation passed to Reply.
type Engine struct {
	index    *knowledge.Index
	faqs     *knowledge.FAQMatcher
	tmpl     templates
	rules    []Rule
	logger   *observability.Logger
	recorder analytics.Recorder
}

// NewEngine creates an engine over a built index.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Index == nil {
		return nil, ErrNoIndex
	}

	e := &Engine{
		index:    cfg.Index,
		faqs:     cfg.FAQs,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		tmpl: templates{
			venue: cfg.Site.Venue(),
			hours: cfg.Site.Hours(),
		},
	}
	if e.faqs == nil {
		e.faqs = knowledge.NewFAQMatcher(nil)
	}
	if e.logger == nil {
		e.logger = observability.NewNopLogger()
	}
	if e.recorder == nil {
		e.recorder = analytics.NopRecorder{}
	}
	e.logger = e.logger.WithOperation("chat")
	e.rules = e.buildRules()

	return e, nil
}

// BuildEngine indexes a content bundle and creates an engine over it.
func BuildEngine(bundle *content.Bundle, logger *observability.Logger, recorder analytics.Recorder) (*Engine, error) {
	if bundle == nil {
		return nil, knowledge.ErrNilMenu
	}
	idx, err := knowledge.BuildIndex(bundle.Menu)
	if err != nil {
		return nil, err
	}
	return NewEngine(EngineConfig{
		Index:    idx,
		FAQs:     knowledge.NewFAQMatcher(bundle.FAQs),
		Site:     bundle.Site,
		Logger:   logger,
		Recorder: recorder,
	})
}

// Index returns the menu index the engine searches.
func (e *Engine) Index() *knowledge.Index {
	return e.index
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Reply runs utterance through the rule chain and updates conv with the
// topic of the winning rule, if it has one. A nil conv is treated as a fresh
// conversation. Reply never fails: unmatched input gets the fallback text.
func (e *Engine) Reply(ctx context.Context, conv *Conversation, utterance string) Reply {
	start := time.Now()
	if conv == nil {
		conv = &Conversation{}
	}

	t := &turn{
		lower: knowledge.Lower(utterance),
		norm:  knowledge.Normalize(utterance),
		conv:  conv,
	}

	var reply Reply
	for _, r := range e.rules {
		if out, ok := r.Match(t); ok {
			reply = out
			reply.Rule = r.Name
			break
		}
	}

	if reply.Topic != "" {
		conv.LastTopic = reply.Topic
	}

	e.logger.WithContext(ctx).Debug().
		Str("rule", reply.Rule).
		Str("topic", reply.Topic).
		Strs("tokens", knowledge.SearchTokens(t.norm)).
		Dur("latency", time.Since(start)).
		Msg("chat turn")

	e.record(ctx, reply, utterance)
	return reply
}

func (e *Engine) record(ctx context.Context, reply Reply, utterance string) {
	ev := analytics.NewEvent(analytics.EventChatTurn)
	ev.SessionID = analytics.SessionIDFromContext(ctx)
	ev.Rule = reply.Rule
	ev.Topic = reply.Topic
	ev.Utterance = utterance

	if err := e.recorder.Record(ctx, ev); err != nil {
		e.logger.Warn().Err(err).Str("rule", reply.Rule).Msg("record chat event failed")
	}
}
