package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/deckhand/deckhand/internal/config"
	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/store"
)

func newDiffCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <revision-a> <revision-b>",
		Short: "Diff two revisions' documents by (schema, name) identity",
		Long: "Diff two revisions' documents by (schema, name) identity.\n" +
			"With --store=local (the default), <revision-a>/<revision-b> are document directories.\n" +
			"With --store=postgres, they are revision IDs loaded from the configured store.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, cfg, args[0], args[1])
		},
	}
}

func runDiff(cmd *cobra.Command, cfg *config.Config, a, b string) error {
	revA, err := loadDiffSide(cmd.Context(), cfg, a)
	if err != nil {
		return err
	}
	revB, err := loadDiffSide(cmd.Context(), cfg, b)
	if err != nil {
		return err
	}

	diff := store.Diff(revA, revB)

	view := make(map[string]string, len(diff))
	for id, status := range diff {
		view[id.String()] = string(status)
	}

	var out []byte
	if cfg.OutputFormat == "json" {
		out, err = json.MarshalIndent(view, "", "  ")
	} else {
		out, err = yaml.Marshal(view)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// loadDiffSide resolves one diff operand: a document directory when
// cfg.StoreKind is local, or a revision ID to load from sqlstore when
// cfg.StoreKind is postgres.
func loadDiffSide(ctx context.Context, cfg *config.Config, arg string) (document.Revision, error) {
	if !cfg.UsesPostgres() {
		return loadDirectory(arg)
	}

	revisionID, err := strconv.Atoi(arg)
	if err != nil {
		return document.Revision{}, fmt.Errorf("diff: %q is not a revision ID: %w", arg, err)
	}
	return loadPostgresRevision(ctx, cfg.PostgresDSN, revisionID)
}
