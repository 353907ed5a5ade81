// Package schemaregistry implements the schema registry (spec §4.1): a
// lookup from a document's full schema triple to the JSON schema that
// applies to it, built from a revision's DataSchema control documents
// plus a small set of built-in meta-schemas.
//
// The concurrency shape is a mutex-protected map, built once and read
// many times, keyed by schema triple rather than by URI.
package schemaregistry

import (
	"sort"
	"strings"
	"sync"

	"github.com/zeebo/errs"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/validate"
)

// ErrRegistry classifies revision-level schema registry errors.
var ErrRegistry = errs.Class("schema registry")

// ErrReservedNamespace classifies a DataSchema targeting a reserved
// namespace, a distinct revision-level failure from ErrRegistry's
// duplicate-registration/malformed-schema cases.
var ErrReservedNamespace = errs.Class("schema registry: reserved namespace")

// Registry answers "what JSON schema applies to document D?" (§4.1). The
// registry always matches the full (namespace, Kind, version) triple;
// the HTTP edge's partial/prefix matching is explicitly not its concern.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*validate.Schema
	sources map[string]document.ID // target -> registering DataSchema, for duplicate-registration errors
}

// New builds a Registry populated with the built-in meta-schemas.
func New() *Registry {
	r := &Registry{
		schemas: make(map[string]*validate.Schema),
		sources: make(map[string]document.ID),
	}
	for target, raw := range builtinMetaSchemas() {
		schema, err := validate.NewSchema(raw)
		if err != nil {
			panic(errs.New("built-in meta-schema %q is malformed: %v", target, err))
		}
		r.schemas[target] = schema
	}
	return r
}

// Load scans every DataSchema control document in the revision and
// registers its target schema. Multiple registrations for the same
// target are a fatal revision-level error (spec §4.1).
func (r *Registry) Load(controls []document.DataSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Sorted for deterministic duplicate-detection error messages.
	sorted := make([]document.DataSchema, len(controls))
	copy(sorted, controls)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Document.ID().Less(sorted[j].Document.ID())
	})

	for _, ds := range sorted {
		if strings.HasPrefix(ds.Target, document.ReservedNamespaceDeckhand) || strings.HasPrefix(ds.Target, document.ReservedNamespaceMetadata) {
			return ErrReservedNamespace.New("%s: target %q falls under a reserved namespace", ds.Document.ID(), ds.Target)
		}
		if existing, ok := r.sources[ds.Target]; ok {
			return ErrRegistry.New("MultipleDataSchemas: %q registered by both %s and %s", ds.Target, existing, ds.Document.ID())
		}
		schema, err := validate.NewSchema(ds.SchemaJSON)
		if err != nil {
			return ErrRegistry.New("%s: %w", ds.Document.ID(), err)
		}
		r.schemas[ds.Target] = schema
		r.sources[ds.Target] = ds.Document.ID()
	}
	return nil
}

// Lookup returns the schema registered for the full schema triple, if
// any.
func (r *Registry) Lookup(schemaTriple string) (*validate.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[schemaTriple]
	return s, ok
}
