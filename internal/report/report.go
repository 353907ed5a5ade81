// Package report implements the validation report builder (spec §4.9):
// aggregating per-document and per-stage errors, plus the per-
// ValidationPolicy health roll-up consumed by the HTTP edge.
package report

import (
	"sort"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

// Status is the outcome of one named validation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusExpired Status = "expired"
	StatusMissing Status = "missing"
)

// InternalValidationName identifies the two validations the engine itself
// produces (spec §4.2). The source material also uses
// "deckhand-document-schema-validation" for the first; the engine
// records under both names so either convention's consumers find it
// (spec §9 open question).
const (
	SchemaValidationName       = "deckhand-schema-validation"
	PolicyValidationName       = "deckhand-policy-validation"
	legacySchemaValidationName = "deckhand-document-schema-validation"
)

// ValidationEntry is one posted or internally computed outcome for a
// named validation.
type ValidationEntry struct {
	Name   string
	Status Status
}

// PolicyResult is the roll-up for one ValidationPolicy.
type PolicyResult struct {
	PolicyName string
	Status     Status
	Entries    map[string]Status
}

// Report is the structured result consumed by the HTTP edge and by
// validate()/render() callers.
type Report struct {
	RevisionID   int
	Errors       []*rendererr.Error
	Internal     map[string]Status
	PolicyResult []PolicyResult
}

// Valid reports whether the revision rendered without any fatal-revision
// error. Fatal-document and advisory errors do not make it false.
func (r *Report) Valid() bool {
	for _, e := range r.Errors {
		if e.Severity() == rendererr.SeverityFatalRevision {
			return false
		}
	}
	return true
}

// Builder accumulates errors and internal validation outcomes over the
// course of one render/validate call; Build() produces the immutable
// Report. This is the "report struct passed by reference" design notes
// §9 calls for.
type Builder struct {
	revisionID int
	errors     []*rendererr.Error
	internal   map[string]Status
}

// NewBuilder starts a report for the given revision.
func NewBuilder(revisionID int) *Builder {
	return &Builder{
		revisionID: revisionID,
		internal:   make(map[string]Status),
	}
}

// AddError records a structured error. Advisory errors never change
// rendered output but still appear in the report.
func (b *Builder) AddError(err error) {
	if e, ok := rendererr.As(err); ok {
		b.errors = append(b.errors, e)
	}
}

// SetInternal records the outcome of one of the engine's own internal
// validations (deckhand-schema-validation, deckhand-policy-validation).
func (b *Builder) SetInternal(name string, status Status) {
	b.internal[name] = status
	if name == SchemaValidationName {
		b.internal[legacySchemaValidationName] = status
	}
}

// HasFatalRevisionError reports whether a fatal-revision error has been
// recorded, which tells the orchestrator to abort (spec §4.10 step 2).
func (b *Builder) HasFatalRevisionError() bool {
	for _, e := range b.errors {
		if e.Severity() == rendererr.SeverityFatalRevision {
			return true
		}
	}
	return false
}

// FailedDocuments returns the set of document IDs that carry a
// fatal-document error. The orchestrator does not use it: it tracks failed
// documents by index, since a replacement shares its parent's ID.
func (b *Builder) FailedDocuments() map[document.ID]bool {
	failed := make(map[document.ID]bool)
	for _, e := range b.errors {
		if e.Severity() == rendererr.SeverityFatalDocument && e.Doc != nil {
			failed[*e.Doc] = true
		}
	}
	return failed
}

// Build assembles the immutable Report, computing the per-ValidationPolicy
// roll-up from the engine's internal validations joined with any
// externally posted entries (latest entry per name wins, spec §4.9).
func (b *Builder) Build(policies []document.ValidationPolicy, external []ValidationEntry) *Report {
	joined := make(map[string]Status, len(b.internal)+len(external))
	for name, status := range b.internal {
		joined[name] = status
	}
	for _, e := range external {
		joined[e.Name] = e.Status // later entries win, so callers pass them oldest first
	}

	errs := make([]*rendererr.Error, len(b.errors))
	copy(errs, b.errors)
	sort.SliceStable(errs, func(i, j int) bool {
		return errorSortKey(errs[i]) < errorSortKey(errs[j])
	})

	results := make([]PolicyResult, 0, len(policies))
	for _, p := range policies {
		pr := PolicyResult{PolicyName: p.Document.Metadata.Name, Status: StatusSuccess, Entries: map[string]Status{}}
		if len(p.Validations) == 0 {
			// Empty ValidationPolicy is advisory (spec §4.2/§7); it
			// trivially succeeds since it names nothing to check.
			results = append(results, pr)
			continue
		}
		for _, name := range p.Validations {
			status, ok := joined[name]
			if !ok {
				status = StatusMissing
			}
			pr.Entries[name] = status
			if status != StatusSuccess {
				pr.Status = StatusFailure
			}
		}
		results = append(results, pr)
	}

	return &Report{
		RevisionID:   b.revisionID,
		Errors:       errs,
		Internal:     joined,
		PolicyResult: results,
	}
}

func errorSortKey(e *rendererr.Error) string {
	key := string(e.Stage) + "|" + string(e.Kind)
	if e.Doc != nil {
		key += "|" + e.Doc.String()
	}
	return key
}
