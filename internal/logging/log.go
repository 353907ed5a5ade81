// Package logging configures the engine's structured logger: a thin
// wrapper over log/slog picking level and output format, modeled on the
// pack's own log.CreateHandler convention (MacroPower-x).
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format is the log output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatLogfmt  Format = "logfmt"
	defaultLevel         = "info"
	defaultFormat        = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// Config holds the resolved logging settings, populated from flags.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config with the engine's defaults.
func NewConfig() *Config {
	return &Config{Level: defaultLevel, Format: defaultFormat}
}

// NewHandler builds the slog.Handler described by c, writing to w.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, c.Format)
	}
}

// ParseLevel parses a level string into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseFormat parses a format string into a Format.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == FormatJSON || f == FormatLogfmt {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WithRevision returns a logger annotated with the revision and
// correlation IDs the orchestrator assigns to one render call.
func WithRevision(base *slog.Logger, revisionID int, correlationID string) *slog.Logger {
	return base.With("revision_id", revisionID, "correlation_id", correlationID)
}
