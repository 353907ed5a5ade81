package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/deckhand/deckhand/internal/config"
	"github.com/deckhand/deckhand/internal/render"
)

func newRenderCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render a revision's documents and print the output set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, cfg)
		},
	}
}

func runRender(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	rev, err := loadRevision(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	o := render.New(nil)
	res, err := o.Render(cmd.Context(), rev)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("rendered revision", "revision_id", rev.ID, "correlation_id", res.CorrelationID,
		"documents", len(res.Documents), "errors", len(res.Report.Errors))

	if !res.Report.Valid() {
		return printRenderFailure(cmd, res, cfg.OutputFormat, cfg.Locale)
	}

	if cfg.OutputFormat == "json" {
		out, err := render.CanonicalJSON(res.Documents)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	docs := make([]any, len(res.Documents))
	for i, d := range res.Documents {
		docs[i] = map[string]any{"schema": d.ID.Schema, "name": d.ID.Name, "bucket": d.Bucket, "data": d.Data}
	}
	out, err := yaml.Marshal(docs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func printRenderFailure(cmd *cobra.Command, res *render.Result, format, locale string) error {
	out, err := marshalReport(res.Report, format, locale)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return fmt.Errorf("render: revision failed validation")
}
