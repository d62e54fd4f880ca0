package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ChatEvent is a persisted analytics event.
type ChatEvent struct {
	ID         string
	Name       string
	SessionID  string
	Rule       string
	Topic      string
	Utterance  string
	OccurredAt time.Time
}

// EventRepository handles chat event persistence.
type EventRepository struct {
	db DB
}

// NewEventRepository creates a new chat event repository.
func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert stores an event.
func (r *EventRepository) Insert(ctx context.Context, ev *ChatEvent) error {
	query := `
		INSERT INTO chat_events (id, name, session_id, rule, topic, utterance, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.Name, ev.SessionID, ev.Rule, ev.Topic, ev.Utterance, ev.OccurredAt.UTC(),
	)
	return err
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*ChatEvent, error) {
	query := `
		SELECT id, name, session_id, rule, topic, utterance, occurred_at
		FROM chat_events WHERE id = $1
	`
	ev := &ChatEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ev.ID, &ev.Name, &ev.SessionID, &ev.Rule, &ev.Topic, &ev.Utterance, &ev.OccurredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ev, err
}

// Recent lists the newest events first.
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]*ChatEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, name, session_id, rule, topic, utterance, occurred_at
		FROM chat_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*ChatEvent
	for rows.Next() {
		ev := &ChatEvent{}
		if err := rows.Scan(
			&ev.ID, &ev.Name, &ev.SessionID, &ev.Rule, &ev.Topic, &ev.Utterance, &ev.OccurredAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountByRule aggregates events per rule name.
func (r *EventRepository) CountByRule(ctx context.Context) (map[string]int, error) {
	query := `SELECT rule, COUNT(*) FROM chat_events GROUP BY rule`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rule string
		var n int
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, err
		}
		counts[rule] = n
	}
	return counts, rows.Err()
}
