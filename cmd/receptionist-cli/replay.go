package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/session"
)

// replayTurn is one replayed utterance and the reply it produced.
type replayTurn struct {
	Utterance string `json:"utterance"`
	Reply     string `json:"reply"`
	Rule      string `json:"rule"`
	Topic     string `json:"topic,omitempty"`
}

// ruleCount is one row of the rule histogram.
type ruleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// replayReport is the result of a replay run.
type replayReport struct {
	Turns []replayTurn `json:"turns"`
	Rules []ruleCount  `json:"rules"`
}

// readUtterances returns the non-blank lines of r, skipping # comments.
func readUtterances(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// replay feeds utterances through one conversation in order. A "---" line
// resets the topic memory, starting a new visitor. onTurn may be nil.
func replay(ctx context.Context, conv *chat.Session, utterances []string, onTurn func()) replayReport {
	report := replayReport{Turns: make([]replayTurn, 0, len(utterances))}
	counts := make(map[string]int)

	for _, u := range utterances {
		if u == "---" {
			conv.Reset()
		} else {
			reply := conv.Turn(ctx, u)
			report.Turns = append(report.Turns, replayTurn{Utterance: u, Reply: reply.Text, Rule: reply.Rule, Topic: reply.Topic})
			counts[reply.Rule]++
		}
		if onTurn != nil {
			onTurn()
		}
	}

	report.Rules = histogram(counts)
	return report
}

// histogram orders counts by frequency, then by rule name.
func histogram(counts map[string]int) []ruleCount {
	rows := make([]ruleCount, 0, len(counts))
	for rule, n := range counts {
		rows = append(rows, ruleCount{Rule: rule, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Rule < rows[j].Rule
	})
	return rows
}

// newReplayCmd creates the replay subcommand.
func newReplayCmd() *cobra.Command {
	var (
		file      string
		showTurns bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a file of utterances through one conversation",
		Long: `Replay reads one utterance per line and answers them in order with topic
memory carried between lines, then prints how often each rule answered.

Blank lines and lines starting with # are ignored. A line containing only
--- starts a fresh conversation. Use --file - to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var in io.Reader = os.Stdin
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open replay file: %w", err)
				}
				defer f.Close()
				in = f
			}

			utterances, err := readUtterances(in)
			if err != nil {
				return fmt.Errorf("read replay file: %w", err)
			}
			if len(utterances) == 0 {
				ui.Warning("No utterances in %s", file)
				return nil
			}

			engine, closeEngine, err := loadEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			ctx = analytics.ContextWithSessionID(ctx, session.NewID())
			bar := ui.NewProgressBar(len(utterances), "Replaying")
			report := replay(ctx, chat.NewSession(engine), utterances, func() { bar.Add(1) })
			bar.Finish()

			if outputJSON {
				return printJSON(report)
			}

			if showTurns {
				rows := make([][]string, len(report.Turns))
				for i, t := range report.Turns {
					rows[i] = []string{strconv.Itoa(i + 1), t.Utterance, t.Rule, t.Topic}
				}
				ui.Table([]string{"#", "Utterance", "Rule", "Topic"}, rows)
			}

			rows := make([][]string, len(report.Rules))
			for i, rc := range report.Rules {
				rows[i] = []string{rc.Rule, strconv.Itoa(rc.Count)}
			}
			ui.Table([]string{"Rule", "Turns"}, rows)
			ui.Success("Replayed %d turns", len(report.Turns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file of utterances, one per line (- for stdin)")
	cmd.Flags().BoolVar(&showTurns, "turns", false, "list every turn with its rule")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
