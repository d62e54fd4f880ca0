// Package handlers provides HTTP handlers for the receptionist API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/monika-restaurant/receptionist/cmd/receptionist-api/middleware"
	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/observability"
	"github.com/monika-restaurant/receptionist/internal/session"
)

const maxBodyBytes = 16 << 10

// ChatHandler serves the chat widget.
type ChatHandler struct {
	logger   *observability.Logger
	engine   *chat.Engine
	sessions *session.Store
}

// NewChatHandler creates a chat handler. A nil engine makes every chat route
// answer 503 so the rest of the API can still come up.
func NewChatHandler(logger *observability.Logger, engine *chat.Engine, sessions *session.Store) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		engine:   engine,
		sessions: sessions,
	}
}

// ChatRequestDTO is the body of POST /chat. Message wins over Action.
type ChatRequestDTO struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message,omitempty"`
	Action    string `json:"action,omitempty"`
}

// ChatResponseDTO is one bot turn.
type ChatResponseDTO struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	HTML      string `json:"html"`
	Rule      string `json:"rule"`
	Topic     string `json:"topic,omitempty"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.writeError(w, http.StatusServiceUnavailable, "chat unavailable", "content failed to load")
		return
	}
	ctx := r.Context()

	var req ChatRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	utterance := req.Message
	if strings.TrimSpace(utterance) == "" && req.Action != "" {
		utterance = chat.ExpandAction(req.Action)
	}
	if strings.TrimSpace(utterance) == "" {
		h.writeError(w, http.StatusBadRequest, "message or action is required", "")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.SessionFromContext(ctx)
	}
	if sessionID == "" {
		sessionID = session.NewID()
	} else if err := session.ValidateID(sessionID); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid sessionId", err.Error())
		return
	}

	log := h.logger.WithContext(ctx).WithSession(sessionID)

	conv, err := h.sessions.Load(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load session, starting fresh")
		conv = &chat.Conversation{}
	}

	reply := h.engine.Reply(analytics.ContextWithSessionID(ctx, sessionID), conv, utterance)

	if err := h.sessions.Save(ctx, sessionID, conv); err != nil {
		log.Warn().Err(err).Msg("Failed to save session")
	}

	w.Header().Set(middleware.SessionHeader, sessionID)
	h.writeJSON(w, http.StatusOK, ChatResponseDTO{
		SessionID: sessionID,
		Reply:     reply.Text,
		HTML:      chat.RenderHTML(reply.Text),
		Rule:      reply.Rule,
		Topic:     reply.Topic,
	})
}

// QuickActions handles GET /chat/quick-actions.
func (h *ChatHandler) QuickActions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, chat.QuickActions())
}

// ResetSession handles DELETE /chat/sessions/{sessionId}.
func (h *ChatHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	err := h.sessions.Reset(r.Context(), sessionID)
	switch {
	case errors.Is(err, session.ErrInvalidID):
		h.writeError(w, http.StatusBadRequest, "invalid sessionId", err.Error())
	case err != nil:
		h.logger.WithContext(r.Context()).Error().Err(err).Str("session_id", sessionID).Msg("Failed to reset session")
		h.writeError(w, http.StatusInternalServerError, "reset failed", err.Error())
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *ChatHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	h.writeJSON(w, status, resp)
}
