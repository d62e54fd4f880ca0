package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *EventRepository {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "events.db"), Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	// Migrations are re-runnable.
	require.NoError(t, Migrate(ctx, db))

	return NewEventRepository(db)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestEventRepository_InsertAndGet(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	ev := &ChatEvent{ID: "e1", Name: "chat_turn", SessionID: "s1", Rule: "greeting", Utterance: "hi", OccurredAt: at}
	require.NoError(t, repo.Insert(ctx, ev))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "greeting", got.Rule)
	assert.Equal(t, "s1", got.SessionID)
	assert.True(t, at.Equal(got.OccurredAt))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepository_RecentAndCounts(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rules := []string{"greeting", "hours", "hours", "fallback"}
	for i, rule := range rules {
		require.NoError(t, repo.Insert(ctx, &ChatEvent{
			ID:         string(rune('a' + i)),
			Name:       "chat_turn",
			Rule:       rule,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "fallback", recent[0].Rule)
	assert.Equal(t, "hours", recent[1].Rule)

	counts, err := repo.CountByRule(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"greeting": 1, "hours": 2, "fallback": 1}, counts)
}
