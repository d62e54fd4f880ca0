package chat

import (
	"context"
	"sync"
)

// Session pairs an engine with one conversation, for callers that keep a
// single chat in process (the CLI REPL, tests).
type Session struct {
	engine *Engine

	mu   sync.Mutex
	conv Conversation
}

// NewSession starts a conversation with no topic memory.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Respond answers utterance and returns the reply text.
func (s *Session) Respond(utterance string) string {
	return s.Turn(context.Background(), utterance).Text
}

// Turn answers utterance and returns the full reply.
func (s *Session) Turn(ctx context.Context, utterance string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Reply(ctx, &s.conv, utterance)
}

// Topic returns the current topic memory.
func (s *Session) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.LastTopic
}

// Reset clears the topic memory, as a page reload would.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Reset()
}
