// Package rendererr defines the rendering engine's error taxonomy (spec
// §7): the stage an error occurred in, its machine-readable kind, and
// the severity that determines how the orchestrator reacts to it.
//
// Errors are classed with github.com/zeebo/errs, one class per stage,
// wrapping a structured *Error — the pack's (storj-storj) convention of
// package-level errs.Class values wrapping a richer struct rather than
// bare fmt.Errorf strings.
package rendererr

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"

	"github.com/deckhand/deckhand/internal/document"
)

// Stage names the rendering stage an error was raised in.
type Stage string

const (
	StageValidation   Stage = "validation"
	StageLayering     Stage = "layering"
	StageSubstitution Stage = "substitution"
	StageReplacement  Stage = "replacement"
	StageSecret       Stage = "secret"
)

// Kind is the machine-readable error kind the HTTP edge maps to a status
// code (spec §6 error surface).
type Kind string

const (
	KindInvalidDocumentFormat       Kind = "InvalidDocumentFormat"
	KindSchemaValidationFailed      Kind = "SchemaValidationFailed"
	KindMultipleLayeringPolicies    Kind = "MultipleLayeringPolicies"
	KindLayeringPolicyNotFound      Kind = "LayeringPolicyNotFound"
	KindMissingParent               Kind = "MissingParent"
	KindIndeterminateDocumentParent Kind = "IndeterminateDocumentParent"
	KindMissingDocumentKey          Kind = "MissingDocumentKey"
	KindSubstitutionFailure         Kind = "SubstitutionFailure"
	KindMissingDocumentPattern      Kind = "MissingDocumentPattern"
	KindSubstitutionCycle           Kind = "SubstitutionCycle"
	KindInvalidReplacement          Kind = "InvalidReplacement"
	KindSingletonReplacement        Kind = "SingletonReplacement"
	KindBarbicanNotFound            Kind = "BarbicanException.NotFound"
	KindBarbicanTransient           Kind = "BarbicanException.Transient"
	KindPolicyNotAuthorized         Kind = "PolicyNotAuthorized"
	KindUnregisteredSchema          Kind = "UnregisteredSchema"
	KindMultipleDataSchemas         Kind = "MultipleDataSchemas"
	KindMissingOptionalLabel        Kind = "MissingOptionalLabel"
	KindEmptyValidationPolicy       Kind = "EmptyValidationPolicy"
	KindReservedNamespace           Kind = "ReservedNamespace"
)

// Severity is how the orchestrator reacts to an error (spec §7).
type Severity string

const (
	// SeverityFatalRevision aborts rendering; the orchestrator returns
	// the report only, with no rendered documents.
	SeverityFatalRevision Severity = "fatal-revision"
	// SeverityFatalDocument fails only the offending document and its
	// descendants; other documents still render.
	SeverityFatalDocument Severity = "fatal-document"
	// SeverityAdvisory is recorded in the report but never changes
	// output.
	SeverityAdvisory Severity = "advisory"
)

var severityByKind = map[Kind]Severity{
	KindInvalidDocumentFormat:       SeverityFatalRevision,
	KindMultipleLayeringPolicies:    SeverityFatalRevision,
	KindMultipleDataSchemas:         SeverityFatalRevision,
	KindReservedNamespace:           SeverityFatalRevision,
	KindSubstitutionCycle:           SeverityFatalRevision,
	KindInvalidReplacement:          SeverityFatalRevision,
	KindSingletonReplacement:        SeverityFatalRevision,
	KindLayeringPolicyNotFound:      SeverityFatalRevision,

	KindSchemaValidationFailed:      SeverityFatalDocument,
	KindMissingParent:               SeverityFatalDocument,
	KindIndeterminateDocumentParent: SeverityFatalDocument,
	KindMissingDocumentKey:          SeverityFatalDocument,
	KindSubstitutionFailure:         SeverityFatalDocument,
	KindMissingDocumentPattern:      SeverityFatalDocument,
	KindBarbicanNotFound:            SeverityFatalDocument,
	KindBarbicanTransient:           SeverityFatalDocument,
	KindPolicyNotAuthorized:         SeverityFatalDocument,

	KindUnregisteredSchema:    SeverityAdvisory,
	KindMissingOptionalLabel:  SeverityAdvisory,
	KindEmptyValidationPolicy: SeverityAdvisory,
}

// SeverityOf reports how the orchestrator should react to an error of
// this kind.
func SeverityOf(k Kind) Severity {
	if s, ok := severityByKind[k]; ok {
		return s
	}
	return SeverityFatalDocument
}

// Error is the structured error record carried in the validation report
// (spec §7: "{document: (schema,name), stage, kind, message, path?}").
type Error struct {
	Doc     *document.ID
	Stage   Stage
	Kind    Kind
	Message string
	Path    string
}

func (e *Error) Error() string {
	if e.Doc != nil {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s: %s (%s): %s", e.Stage, e.Kind, *e.Doc, e.Path, e.Message)
		}
		return fmt.Sprintf("%s: %s: %s: %s", e.Stage, e.Kind, *e.Doc, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Message)
}

// Severity is a convenience accessor for SeverityOf(e.Kind).
func (e *Error) Severity() Severity {
	return SeverityOf(e.Kind)
}

// Stage-scoped error classes, one per rendering stage.
var (
	Validation   = errs.Class("validation")
	Layering     = errs.Class("layering")
	Substitution = errs.Class("substitution")
	Replacement  = errs.Class("replacement")
	Secret       = errs.Class("secret")
)

func classFor(stage Stage) errs.Class {
	switch stage {
	case StageValidation:
		return Validation
	case StageLayering:
		return Layering
	case StageSubstitution:
		return Substitution
	case StageReplacement:
		return Replacement
	case StageSecret:
		return Secret
	default:
		return Validation
	}
}

// New builds and classifies an *Error as a Go error, ready to be
// returned or accumulated into a report.
func New(stage Stage, kind Kind, doc *document.ID, path, format string, args ...any) error {
	e := &Error{
		Doc:     doc,
		Stage:   stage,
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
	return classFor(stage).Wrap(e)
}

// As extracts the structured *Error from an error produced by New, if
// any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
