package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/cache"
	"github.com/monika-restaurant/receptionist/internal/session"
)

// newSessionsCmd creates the sessions subcommand.
func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage conversation state kept by the API",
		Long: `Sessions operates on the session cache configured under cache.driver.
Only the redis driver shares sessions with a running API; memory sessions
live inside the API process.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Forget every stored conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionStore(func(ctx context.Context, store *session.Store) error {
				return purgeSessions(ctx, store)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset <session-id>",
		Short: "Forget the topic memory of one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionStore(func(ctx context.Context, store *session.Store) error {
				if err := store.Reset(ctx, args[0]); err != nil {
					return err
				}
				ui.Success("Session %s reset", args[0])
				return nil
			})
		},
	})

	return cmd
}

func withSessionStore(fn func(context.Context, *session.Store) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Cache.Driver != "redis" {
		ui.Warning("cache.driver is %q; sessions of a running API are not reachable from here", cfg.Cache.Driver)
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, session.NewStore(c, cfg.Chat.SessionTTL))
}

func purgeSessions(ctx context.Context, store *session.Store) error {
	if err := store.Purge(ctx); err != nil {
		return err
	}
	ui.Success("All sessions purged")
	return nil
}
