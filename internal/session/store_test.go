package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monika-restaurant/receptionist/internal/cache"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/session"
)

func newStore(t *testing.T) (*session.Store, *cache.MemoryClient) {
	t.Helper()
	c := cache.NewMemoryClient(100)
	t.Cleanup(func() { _ = c.Close() })
	return session.NewStore(c, time.Minute), c
}

func TestStore_LoadUnknownIsFresh(t *testing.T) {
	store, _ := newStore(t)

	conv, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, &chat.Conversation{}, conv)

	_, err = store.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_SaveLoadReset(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.Save(ctx, "abc", &chat.Conversation{LastTopic: "cocktails"}))

	conv, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "cocktails", conv.LastTopic)

	require.NoError(t, store.Reset(ctx, "abc"))
	conv, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, conv.LastTopic)
}

func TestStore_SaveNil(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	require.NoError(t, store.Save(ctx, "abc", nil))
	conv, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, conv.LastTopic)
}

func TestStore_StoredAsJSON(t *testing.T) {
	ctx := context.Background()
	store, c := newStore(t)

	require.NoError(t, store.Save(ctx, "abc", &chat.Conversation{LastTopic: "hours"}))

	raw, err := c.Get(ctx, cache.SessionKey("abc"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastTopic":"hours"}`, string(raw))
}

func TestStore_CorruptState(t *testing.T) {
	ctx := context.Background()
	store, c := newStore(t)

	require.NoError(t, c.Set(ctx, cache.SessionKey("abc"), []byte("{not json"), time.Minute))

	_, err := store.Load(ctx, "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestStore_Purge(t *testing.T) {
	ctx := context.Background()
	store, c := newStore(t)

	require.NoError(t, store.Save(ctx, "a", &chat.Conversation{LastTopic: "menu"}))
	require.NoError(t, store.Save(ctx, "b", &chat.Conversation{LastTopic: "menu"}))
	require.NoError(t, c.Set(ctx, "unrelated", []byte("x"), time.Minute))

	require.NoError(t, store.Purge(ctx))
	assert.Equal(t, 1, c.Len())
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"uuid", session.NewID(), true},
		{"short token", "abc-123", true},
		{"empty", "", false},
		{"whitespace", "a b", false},
		{"glob", "session*", false},
		{"too long", strings.Repeat("x", 129), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := session.ValidateID(tc.id)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, session.ErrInvalidID)
			}
		})
	}
}

func TestStore_RejectsInvalidID(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Load(ctx, "")
	assert.ErrorIs(t, err, session.ErrInvalidID)
	assert.ErrorIs(t, store.Save(ctx, "", &chat.Conversation{}), session.ErrInvalidID)
	assert.ErrorIs(t, store.Reset(ctx, ""), session.ErrInvalidID)
}

func TestNewID(t *testing.T) {
	id := session.NewID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, id, session.NewID())
}

type failingCache struct{ cache.Client }

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestStore_CacheFailure(t *testing.T) {
	store := session.NewStore(failingCache{}, time.Minute)

	_, err := store.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
