// Package session persists per-session conversation state in a cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monika-restaurant/receptionist/internal/cache"
	"github.com/monika-restaurant/receptionist/internal/chat"
)

// ErrNotFound is returned by Get when no state is stored for a session.
var ErrNotFound = errors.New("session not found")

// ErrInvalidID is returned for an empty or malformed session id.
var ErrInvalidID = errors.New("invalid session id")

const maxIDLength = 128

// Store keeps one chat.Conversation per session id. Saving refreshes the
// expiry, so idle sessions are forgotten after ttl.
type Store struct {
	cache cache.Client
	ttl   time.Duration
}

// NewStore creates a store over c with the given idle timeout.
func NewStore(c cache.Client, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that id is usable as a session key.
func ValidateID(id string) error {
	if id == "" || len(id) > maxIDLength || strings.ContainsAny(id, " \t\r\n*") {
		return ErrInvalidID
	}
	return nil
}

// Get returns the stored conversation or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*chat.Conversation, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	data, err := s.cache.Get(ctx, cache.SessionKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var conv chat.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &conv, nil
}

// Load returns the stored conversation, or a fresh one when the session is
// unknown or has expired.
func (s *Store) Load(ctx context.Context, id string) (*chat.Conversation, error) {
	conv, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &chat.Conversation{}, nil
	}
	return conv, err
}

// Save stores conv under id.
func (s *Store) Save(ctx context.Context, id string, conv *chat.Conversation) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if conv == nil {
		conv = &chat.Conversation{}
	}

	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := s.cache.Set(ctx, cache.SessionKey(id), data, s.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

// Reset forgets the conversation stored under id.
func (s *Store) Reset(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cache.SessionKey(id)); err != nil {
		return fmt.Errorf("reset session %s: %w", id, err)
	}
	return nil
}

// Purge forgets every stored session.
func (s *Store) Purge(ctx context.Context) error {
	if err := s.cache.DeleteByPrefix(ctx, cache.SessionKey("")); err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	return nil
}
