package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "localhost:8090", "://bad"} {
		_, err := New(Config{BaseURL: base})
		assert.Error(t, err, base)
	}
}

func TestChat(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ChatRequest{SessionID: "s1", Message: "hi"}, req)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{SessionID: "s1", Reply: "Hello!", HTML: "Hello!", Rule: "greeting"})
	})

	resp, err := c.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "greeting", resp.Rule)
	assert.Equal(t, "Hello!", resp.Reply)
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		message     string
		unavailable bool
	}{
		{"bad request", http.StatusBadRequest, `{"error":"message or action is required","message":"message or action is required"}`, "message or action is required", false},
		{"unavailable", http.StatusServiceUnavailable, `{"error":"chat unavailable","message":"chat unavailable","detail":"content failed to load"}`, "chat unavailable", true},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, "Bad Gateway", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.unavailable, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestResetSession(t *testing.T) {
	var path string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.ResetSession(context.Background(), "abc-123"))
	assert.Equal(t, "/api/v1/chat/sessions/abc-123", path)
}

func TestQuickActionsAndHealth(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte(`{"status":"healthy","service":"receptionist"}`))
		case "/api/v1/chat/quick-actions":
			_, _ = w.Write([]byte(`[{"action":"menu","text":"Can I see the menu?"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &HealthStatus{Status: "healthy", Service: "receptionist"}, health)

	actions, err := c.QuickActions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []QuickAction{{Action: "menu", Text: "Can I see the menu?"}}, actions)
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = c.Chat(context.Background(), ChatRequest{Message: "hi"})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
