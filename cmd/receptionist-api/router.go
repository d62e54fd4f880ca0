package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/monika-restaurant/receptionist/cmd/receptionist-api/handlers"
	"github.com/monika-restaurant/receptionist/cmd/receptionist-api/middleware"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/observability"
	"github.com/monika-restaurant/receptionist/internal/session"
)

// pinger is implemented by backends that can report their connectivity.
type pinger interface {
	Ping(ctx context.Context) error
}

// AppConfig holds what the router is built from.
type AppConfig struct {
	ServiceName    string
	RequestTimeout time.Duration
	AllowedOrigins []string

	Engine   *chat.Engine // nil when content failed to load
	Sessions *session.Store
	Backend  pinger // optional readiness dependency
}

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *AppConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy", "service": cfg.ServiceName})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Engine == nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "reason": "content not loaded"})
			return
		}
		if cfg.Backend != nil {
			if err := cfg.Backend.Ping(r.Context()); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "reason": err.Error()})
				return
			}
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	chatHandler := handlers.NewChatHandler(logger, cfg.Engine, cfg.Sessions)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", chatHandler.Chat)
			r.Get("/quick-actions", chatHandler.QuickActions)
			r.Delete("/sessions/{sessionId}", chatHandler.ResetSession)
		})
	})

	return r
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
