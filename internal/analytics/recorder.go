// Package analytics records chat events. Recording is fire-and-forget from
// the caller's point of view: failures are reported but never alter a reply.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/monika-restaurant/receptionist/internal/observability"
)

// EventChatTurn is emitted once per answered utterance.
const EventChatTurn = "chat_turn"

// Event is a single analytics record.
type Event struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SessionID  string    `json:"sessionId,omitempty"`
	Rule       string    `json:"rule,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	Utterance  string    `json:"utterance,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(name string) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// Recorder receives analytics events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// NopRecorder discards every event.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Event) error { return nil }

// LogRecorder writes events to the structured log.
type LogRecorder struct {
	logger *observability.Logger
}

// NewLogRecorder creates a recorder logging at info level.
func NewLogRecorder(logger *observability.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.WithOperation("analytics")}
}

// Record implements Recorder.
func (r *LogRecorder) Record(ctx context.Context, ev Event) error {
	r.logger.WithContext(ctx).Info().
		Str("event_id", ev.ID).
		Str("event", ev.Name).
		Str("session_id", ev.SessionID).
		Str("rule", ev.Rule).
		Str("topic", ev.Topic).
		Msg("analytics event")
	return nil
}

type contextKey string

const sessionIDKey contextKey = "session_id"

// ContextWithSessionID attaches the chat session id events should carry.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the session id attached to ctx, if any.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
