package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckhand/deckhand/internal/config"
	"github.com/deckhand/deckhand/internal/render"
)

func newValidateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a revision's documents and print the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, cfg)
		},
	}
}

func runValidate(cmd *cobra.Command, cfg *config.Config) error {
	rev, err := loadRevision(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	o := render.New(nil)
	rep := o.Validate(cmd.Context(), rev)

	out, err := marshalReport(rep, cfg.OutputFormat, cfg.Locale)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !rep.Valid() {
		return fmt.Errorf("validate: revision failed validation")
	}
	return nil
}
