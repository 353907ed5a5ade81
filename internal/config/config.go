// Package config loads cmd/deckhand's CLI configuration: flags via
// spf13/pflag, with an optional config-file overlay via spf13/viper
// (grounded on the pack's storj-storj combination of the two). The
// rendering engine itself holds no configuration of its own (spec §1
// scopes config-file loading of the service out of bounds); this is
// purely the CLI driver's ambient concern.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/deckhand/deckhand/internal/logging"
)

// Config is the resolved configuration for one cmd/deckhand invocation.
type Config struct {
	DocumentsDir string
	StoreKind    string // "local" or "postgres"
	PostgresDSN  string
	RevisionID   int    // revision to load when --store=postgres
	OutputFormat string // "yaml" or "json"
	Locale       string // locale for report error messages ("en", "fr")
	Logging      *logging.Config
}

// UsesPostgres reports whether the configured store backend is the
// Postgres-backed internal/store/sqlstore provider rather than a local
// document directory.
func (c *Config) UsesPostgres() bool {
	return c.StoreKind == "postgres"
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		StoreKind:    "local",
		RevisionID:   1,
		OutputFormat: "yaml",
		Locale:       "en",
		Logging:      logging.NewConfig(),
	}
}

// RegisterFlags adds the CLI's flags to fs.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DocumentsDir, "documents-dir", c.DocumentsDir, "directory of YAML documents to load as the revision")
	fs.StringVar(&c.StoreKind, "store", c.StoreKind, "revision store backend (local, postgres)")
	fs.StringVar(&c.PostgresDSN, "postgres-dsn", c.PostgresDSN, "Postgres connection string, required when --store=postgres")
	fs.IntVar(&c.RevisionID, "revision-id", c.RevisionID, "revision to load when --store=postgres")
	fs.StringVar(&c.OutputFormat, "output", c.OutputFormat, "rendered output format (yaml, json)")
	fs.StringVar(&c.Locale, "locale", c.Locale, "locale for report error messages (en, fr)")
	c.Logging.RegisterFlags(fs)
}

// Load overlays values from an optional config file (if configFile is
// non-empty) onto c, with already-set flags taking precedence.
func (c *Config) Load(configFile string, fs *pflag.FlagSet) error {
	if configFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", configFile, err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("config: bind flags: %w", err)
	}

	if !fs.Changed("documents-dir") {
		c.DocumentsDir = v.GetString("documents-dir")
	}
	if !fs.Changed("store") {
		c.StoreKind = v.GetString("store")
	}
	if !fs.Changed("postgres-dsn") {
		c.PostgresDSN = v.GetString("postgres-dsn")
	}
	if !fs.Changed("revision-id") {
		c.RevisionID = v.GetInt("revision-id")
	}
	if !fs.Changed("output") {
		c.OutputFormat = v.GetString("output")
	}
	if !fs.Changed("locale") {
		c.Locale = v.GetString("locale")
	}
	if !fs.Changed("log-level") {
		c.Logging.Level = v.GetString("log-level")
	}
	if !fs.Changed("log-format") {
		c.Logging.Format = v.GetString("log-format")
	}
	return nil
}

// Validate reports whether the resolved configuration is internally
// consistent.
func (c *Config) Validate() error {
	if c.StoreKind != "local" && c.StoreKind != "postgres" {
		return fmt.Errorf("config: unknown store kind %q", c.StoreKind)
	}
	if c.StoreKind == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("config: --postgres-dsn is required when --store=postgres")
	}
	if c.OutputFormat != "yaml" && c.OutputFormat != "json" {
		return fmt.Errorf("config: unknown output format %q", c.OutputFormat)
	}
	if c.Locale != "en" && c.Locale != "fr" {
		return fmt.Errorf("config: unknown locale %q", c.Locale)
	}
	return nil
}
