// Command deckhand drives the rendering engine from the command line:
// render, validate, and diff a revision assembled from a local directory
// of YAML documents (or, with --store=postgres, from a Postgres-backed
// revision store).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckhand/deckhand/internal/config"
)

func main() {
	cfg := config.NewConfig()
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "deckhand",
		Short:         "Render, validate, and diff deckhand document revisions",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file overlaying flag defaults")
	cfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := cfg.Logging.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Load(configFile, cmd.Flags()); err != nil {
			return err
		}
		return cfg.Validate()
	}

	rootCmd.AddCommand(
		newRenderCmd(cfg),
		newValidateCmd(cfg),
		newDiffCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	handler, err := cfg.Logging.NewHandler(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return slog.New(handler), nil
}
