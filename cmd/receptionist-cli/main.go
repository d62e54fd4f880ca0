// Package main provides the receptionist CLI for chatting with and
// inspecting the response engine from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/monika-restaurant/receptionist/internal/analytics"
	"github.com/monika-restaurant/receptionist/internal/chat"
	"github.com/monika-restaurant/receptionist/internal/config"
	"github.com/monika-restaurant/receptionist/internal/content"
	"github.com/monika-restaurant/receptionist/internal/observability"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool
	noColor    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "receptionist-cli",
	Short: "Chat with and inspect the Monika receptionist",
	Long: `receptionist-cli runs the receptionist response engine locally.

Use this tool to:
- Chat with the receptionist in the terminal
- Ask one-off questions, locally or against a running API
- Replay a file of utterances and see which rules answer them
- Inspect the menu index and recorded chat events

All commands support --json for automation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		path := cfgFile
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}
		level := "warn"
		if verbose {
			level = "debug"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      logFormat,
			Output:      os.Stderr,
			ServiceName: "receptionist-cli",
		})
		ui = NewUI(outputJSON, noColor)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEngine reads the content files and builds an engine that records to
// the configured analytics store. The returned close function is never nil.
func loadEngine(ctx context.Context) (*chat.Engine, func(), error) {
	recorder, closeRecorder, err := analytics.Open(ctx, cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Analytics unavailable, events will not be recorded")
		recorder = analytics.NopRecorder{}
	}
	closeFn := func() {
		if err := closeRecorder(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close analytics store")
		}
	}

	bundle, err := content.LoadAll(cfg.Content)
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("load content: %w", err)
	}

	engine, err := chat.BuildEngine(bundle, logger, recorder)
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("build engine: %w", err)
	}

	logger.Debug().
		Int("items", engine.Index().Len()).
		Int("categories", len(engine.Index().Categories())).
		Int("faqs", len(bundle.FAQs)).
		Msg("Knowledge index built")

	return engine, closeFn, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputJSON {
				return printJSON(map[string]string{
					"version": version,
					"go":      runtime.Version(),
				})
			}
			fmt.Printf("receptionist-cli v%s\n", version)
			return nil
		},
	}
}
