package logging

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags adds --log-level/--log-format flags to fs, writing into c.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Level, "log-level", c.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Format, "log-format", c.Format, "log output format (json, logfmt)")
}

// RegisterCompletions wires shell completion for the flags RegisterFlags
// added, so `--log-level <TAB>` suggests the valid values.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	if err := cmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		return err
	}
	return cmd.RegisterFlagCompletionFunc("log-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(FormatJSON), string(FormatLogfmt)}, cobra.ShellCompDirectiveNoFileComp
	})
}
