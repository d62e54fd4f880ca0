package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/storage"
)

// newEventsCmd creates the events subcommand.
func newEventsCmd() *cobra.Command {
	var (
		limit  int
		byRule bool
		id     string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded chat events",
		Long: `Events reads the analytics store configured under analytics.driver.
Only the sqlite and postgres drivers keep events that can be listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			driver := cfg.Analytics.Driver
			if driver != "sqlite" && driver != "postgres" {
				return fmt.Errorf("analytics driver %q does not store events", driver)
			}

			maxOpen := cfg.Analytics.SQLite.MaxOpenConns
			if driver == "postgres" {
				maxOpen = cfg.Analytics.Postgres.MaxOpenConns
			}
			db, err := storage.Open(ctx, driver, cfg.AnalyticsDSN(), storage.Options{MaxOpenConns: maxOpen})
			if err != nil {
				return err
			}
			defer db.Close()
			if err := storage.Migrate(ctx, db); err != nil {
				return err
			}

			recorder := analytics.NewSQLRecorder(db)

			if id != "" {
				ev, err := recorder.Get(ctx, id)
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("no event with id %s", id)
				}
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(ev)
				}
				printEvent(ev)
				return nil
			}

			if byRule {
				counts, err := recorder.RuleCounts(ctx)
				if err != nil {
					return err
				}
				rows := histogram(counts)
				if outputJSON {
					return printJSON(rows)
				}
				table := make([][]string, len(rows))
				for i, rc := range rows {
					table[i] = []string{rc.Rule, strconv.Itoa(rc.Count)}
				}
				ui.Table([]string{"Rule", "Turns"}, table)
				return nil
			}

			events, err := recorder.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(events)
			}
			if len(events) == 0 {
				ui.Info("No events recorded yet")
				return nil
			}

			rows := make([][]string, len(events))
			for i, ev := range events {
				rows[i] = []string{
					ev.OccurredAt.Local().Format("2006-01-02 15:04:05"),
					shortID(ev.SessionID),
					ev.Rule,
					ev.Topic,
					truncate(ev.Utterance, 48),
				}
			}
			ui.Table([]string{"Time", "Session", "Rule", "Topic", "Utterance"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show, newest first")
	cmd.Flags().BoolVar(&byRule, "by-rule", false, "show turn counts per rule instead")
	cmd.Flags().StringVar(&id, "id", "", "show one event in full")

	return cmd
}

func printEvent(ev analytics.Event) {
	ui.KeyValue("ID", ev.ID)
	ui.KeyValue("Event", ev.Name)
	ui.KeyValue("Time", ev.OccurredAt.Local().Format(time.RFC3339))
	ui.KeyValue("Session", ev.SessionID)
	ui.KeyValue("Rule", ev.Rule)
	if ev.Topic != "" {
		ui.KeyValue("Topic", ev.Topic)
	}
	ui.KeyValue("Utterance", ev.Utterance)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
