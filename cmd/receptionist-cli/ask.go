package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/pkg/client"
)

// askResult is the JSON shape of one answered question.
type askResult struct {
	SessionID string `json:"sessionId,omitempty"`
	Reply     string `json:"reply"`
	Rule      string `json:"rule"`
	Topic     string `json:"topic,omitempty"`
}

// newAskCmd creates the ask subcommand.
func newAskCmd() *cobra.Command {
	var (
		remote    string
		sessionID string
		action    string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [utterance...]",
		Short: "Ask a single question",
		Long: `Ask answers one utterance and exits. By default the engine runs locally
against the configured content files. With --remote the question is sent to
a running receptionist API, and --session continues an existing conversation.`,
		Example: `  receptionist-cli ask "what time do you open on sunday"
  receptionist-cli ask --action menu
  receptionist-cli ask --remote http://localhost:8090 --session abc "anything else"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			utterance := strings.Join(args, " ")
			if strings.TrimSpace(utterance) == "" && action == "" {
				return fmt.Errorf("an utterance or --action is required")
			}

			var (
				result askResult
				err    error
			)
			if remote != "" {
				result, err = askRemote(ctx, remote, sessionID, utterance, action)
			} else {
				result, err = askLocal(ctx, utterance, action)
			}
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(result)
			}
			ui.Bot(result.Reply)
			if verbose {
				ui.KeyValue("Rule", result.Rule)
				if result.Topic != "" {
					ui.KeyValue("Topic", result.Topic)
				}
				if result.SessionID != "" {
					ui.KeyValue("Session", result.SessionID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a receptionist API (default: run locally)")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to continue (remote only)")
	cmd.Flags().StringVar(&action, "action", "", "quick action id to send instead of text")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")

	return cmd
}

func askLocal(ctx context.Context, utterance, action string) (askResult, error) {
	engine, closeEngine, err := loadEngine(ctx)
	if err != nil {
		return askResult{}, err
	}
	defer closeEngine()

	if strings.TrimSpace(utterance) == "" {
		utterance = chat.ExpandAction(action)
	}

	var conv chat.Conversation
	reply := engine.Reply(ctx, &conv, utterance)
	return askResult{Reply: reply.Text, Rule: reply.Rule, Topic: reply.Topic}, nil
}

func askRemote(ctx context.Context, baseURL, sessionID, utterance, action string) (askResult, error) {
	c, err := client.New(client.Config{BaseURL: baseURL})
	if err != nil {
		return askResult{}, err
	}

	req := client.ChatRequest{SessionID: sessionID, Message: utterance}
	if strings.TrimSpace(utterance) == "" {
		req.Action = action
	}

	resp, err := c.Chat(ctx, req)
	if err != nil {
		return askResult{}, fmt.Errorf("ask %s: %w", baseURL, err)
	}
	return askResult{SessionID: resp.SessionID, Reply: resp.Reply, Rule: resp.Rule, Topic: resp.Topic}, nil
}
