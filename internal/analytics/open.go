package analytics

import (
	"context"
	"fmt"

	"github.com/monika-restaurant/receptionist/internal/config"
	"github.com/monika-restaurant/receptionist/internal/observability"
	"github.com/monika-restaurant/receptionist/internal/storage"
)

// Open builds the recorder selected by cfg. The returned close function
// releases any database handle and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *observability.Logger) (Recorder, func() error, error) {
	noop := func() error { return nil }

	var maxOpen int
	switch cfg.Analytics.Driver {
	case "", "none":
		return NopRecorder{}, noop, nil
	case "log":
		return NewLogRecorder(logger), noop, nil
	case "sqlite":
		maxOpen = cfg.Analytics.SQLite.MaxOpenConns
	case "postgres":
		maxOpen = cfg.Analytics.Postgres.MaxOpenConns
	default:
		return nil, noop, fmt.Errorf("unknown analytics driver: %s", cfg.Analytics.Driver)
	}

	db, err := storage.Open(ctx, cfg.Analytics.Driver, cfg.AnalyticsDSN(), storage.Options{MaxOpenConns: maxOpen})
	if err != nil {
		return nil, noop, err
	}
	if err := storage.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, noop, err
	}
	return NewSQLRecorder(db), db.Close, nil
}
