package main

import (
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/deckhand/deckhand/internal/report"
)

// reportView is the CLI-facing shape of a report.Report: rendererr.Error
// is deliberately unexported-field-free for API stability, but the CLI
// wants plain maps for stable YAML/JSON key ordering. locale selects the
// human-readable rendering of each error's kind (report.Localize); the
// machine-readable kind is always included alongside it.
func reportView(r *report.Report, locale string) map[string]any {
	errs := make([]map[string]any, 0, len(r.Errors))
	for _, e := range r.Errors {
		entry := map[string]any{
			"stage":    string(e.Stage),
			"kind":     string(e.Kind),
			"severity": string(e.Severity()),
			"message":  e.Message,
			"detail":   report.Localize(locale, string(e.Kind)),
		}
		if e.Doc != nil {
			entry["document"] = e.Doc.String()
		}
		if e.Path != "" {
			entry["path"] = e.Path
		}
		errs = append(errs, entry)
	}

	return map[string]any{
		"revision_id": r.RevisionID,
		"valid":       r.Valid(),
		"errors":      errs,
		"internal":    r.Internal,
	}
}

func marshalReport(r *report.Report, format, locale string) ([]byte, error) {
	view := reportView(r, locale)
	if format == "json" {
		return json.MarshalIndent(view, "", "  ")
	}
	return yaml.Marshal(view)
}
