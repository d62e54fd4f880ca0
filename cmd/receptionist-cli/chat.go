package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/session"
)

// inputKind classifies one REPL line.
type inputKind int

const (
	inputSkip inputKind = iota
	inputUtterance
	inputReset
	inputHelp
	inputQuit
)

// parseInput turns a REPL line into a command or an utterance. A slash
// followed by a quick action id sends that action's prompt.
func parseInput(line string) (inputKind, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return inputSkip, ""
	}
	if !strings.HasPrefix(line, "/") {
		return inputUtterance, line
	}

	cmd := strings.ToLower(strings.TrimPrefix(line, "/"))
	switch cmd {
	case "quit", "exit", "q":
		return inputQuit, ""
	case "reset":
		return inputReset, ""
	case "help", "?":
		return inputHelp, ""
	}
	for _, qa := range chat.QuickActions() {
		if qa.Action == cmd {
			return inputUtterance, qa.Text
		}
	}
	return inputUtterance, line
}

// newChatCmd creates the interactive chat subcommand.
func newChatCmd() *cobra.Command {
	var noDelay bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the receptionist in the terminal",
		Long: `Chat starts an interactive conversation. The bot keeps topic memory
between turns, exactly as the website widget does.

Commands:
  /reserve /menu /hire /hours /call   send a quick action
  /reset                              forget the current topic
  /help                               list commands
  /quit                               leave`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			engine, closeEngine, err := loadEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			ctx = analytics.ContextWithSessionID(ctx, session.NewID())
			conv := chat.NewSession(engine)

			delay := func() {
				if noDelay || outputJSON {
					return
				}
				ui.NewSpinner("typing...").Wait(chat.TypingDelay(cfg.Chat.TypingDelayMin, cfg.Chat.TypingDelayMax, nil))
			}

			return runREPL(ctx, os.Stdin, conv, delay)
		},
	}

	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "reply immediately without the typing pause")

	return cmd
}

// runREPL reads lines from in until EOF or /quit.
func runREPL(ctx context.Context, in io.Reader, conv *chat.Session, delay func()) error {
	ui.Bot(chat.WelcomeMessage())
	ui.Info("Type /help for commands, /quit to leave")

	scanner := bufio.NewScanner(in)
	for {
		ui.Prompt()
		if !scanner.Scan() {
			break
		}

		kind, text := parseInput(scanner.Text())
		switch kind {
		case inputSkip:
			continue
		case inputQuit:
			return nil
		case inputReset:
			conv.Reset()
			ui.Success("Conversation reset")
			continue
		case inputHelp:
			printHelp()
			continue
		}

		delay()
		reply := conv.Turn(ctx, text)
		if outputJSON {
			if err := printJSON(reply); err != nil {
				return err
			}
			continue
		}
		ui.Bot(reply.Text)
		logger.Debug().Str("rule", reply.Rule).Str("topic", reply.Topic).Msg("Turn answered")
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func printHelp() {
	rows := make([][]string, 0, len(chat.QuickActions())+3)
	for _, qa := range chat.QuickActions() {
		rows = append(rows, []string{"/" + qa.Action, qa.Text})
	}
	rows = append(rows,
		[]string{"/reset", "Forget the current topic"},
		[]string{"/help", "Show this list"},
		[]string{"/quit", "Leave the chat"},
	)
	ui.Table([]string{"Command", "Sends"}, rows)
}
