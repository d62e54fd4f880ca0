// Package main provides the receptionist chat API server entrypoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/cache"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/config"
	"github.com/monika-restaurant/receptionist/internal/content"
	"github.com/monika-restaurant/receptionist/internal/observability"
	"github.com/monika-restaurant/receptionist/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfgPath, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Driver).
		Str("analytics", cfg.Analytics.Driver).
		Msg("Starting receptionist API")

	ctx := context.Background()

	recorder, closeRecorder, err := analytics.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open analytics store, events will not be recorded")
		recorder = analytics.NopRecorder{}
	}
	defer func() {
		if err := closeRecorder(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close analytics store")
		}
	}()

	engine := buildEngine(cfg, logger, recorder)

	store, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Cache.Driver).Msg("Failed to create session cache, falling back to memory")
		store = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}
	defer store.Close()

	appCfg := &AppConfig{
		ServiceName:    cfg.Observability.ServiceName,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: []string{"*"},
		Engine:         engine,
		Sessions:       session.NewStore(store, cfg.Chat.SessionTTL),
	}
	if p, ok := store.(pinger); ok {
		appCfg.Backend = p
	}

	router := NewRouter(logger, appCfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// parseFlags returns the config file path. --config overrides CONFIG_PATH.
func parseFlags(args []string) (string, error) {
	fs := flag.NewFlagSet("receptionist-api", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", os.Getenv("CONFIG_PATH"), "config file path (default: $CONFIG_PATH, then env vars)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *cfgPath, nil
}

// buildEngine loads the content and indexes it. Failures are logged and
// leave the engine nil so /health stays up while chat answers 503.
func buildEngine(cfg *config.Config, logger *observability.Logger, recorder analytics.Recorder) *chat.Engine {
	bundle, err := content.LoadAll(cfg.Content)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load content")
		return nil
	}

	engine, err := chat.BuildEngine(bundle, logger, recorder)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build knowledge index")
		return nil
	}

	logger.Info().
		Int("items", engine.Index().Len()).
		Int("categories", len(engine.Index().Categories())).
		Int("faqs", len(bundle.FAQs)).
		Msg("Knowledge index built")

	return engine
}
