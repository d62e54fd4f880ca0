package analytics

import (
	"context"
	"fmt"

	"github.com/monika-restaurant/receptionist/internal/storage"
)

// SQLRecorder persists events through the storage layer.
type SQLRecorder struct {
	repo *storage.EventRepository
}

// NewSQLRecorder creates a recorder on top of an already migrated database.
func NewSQLRecorder(db storage.DB) *SQLRecorder {
	return &SQLRecorder{repo: storage.NewEventRepository(db)}
}

// Record implements Recorder.
func (r *SQLRecorder) Record(ctx context.Context, ev Event) error {
	if err := r.repo.Insert(ctx, &storage.ChatEvent{
		ID:         ev.ID,
		Name:       ev.Name,
		SessionID:  ev.SessionID,
		Rule:       ev.Rule,
		Topic:      ev.Topic,
		Utterance:  ev.Utterance,
		OccurredAt: ev.OccurredAt,
	}); err != nil {
		return fmt.Errorf("record %s: %w", ev.Name, err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *SQLRecorder) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]Event, len(rows))
	for i, row := range rows {
		events[i] = fromRow(row)
	}
	return events, nil
}

// Get returns the event with id, or storage.ErrNotFound.
func (r *SQLRecorder) Get(ctx context.Context, id string) (Event, error) {
	row, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return fromRow(row), nil
}

func fromRow(row *storage.ChatEvent) Event {
	return Event{
		ID:         row.ID,
		Name:       row.Name,
		SessionID:  row.SessionID,
		Rule:       row.Rule,
		Topic:      row.Topic,
		Utterance:  row.Utterance,
		OccurredAt: row.OccurredAt,
	}
}

// RuleCounts aggregates recorded turns per rule.
func (r *SQLRecorder) RuleCounts(ctx context.Context) (map[string]int, error) {
	return r.repo.CountByRule(ctx)
}
