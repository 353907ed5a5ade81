// Package document defines the deckhand document envelope: the atomic
// unit ingested, versioned, and rendered by the engine (spec §3).
package document

import "fmt"

// MetaSchema classifies a document's envelope, distinguishing ordinary
// documents from control documents.
type MetaSchema string

const (
	MetaDocumentV1 MetaSchema = "metadata/Document/v1"
	MetaControlV1  MetaSchema = "metadata/Control/v1"
)

// StoragePolicy names how a document's data is stored.
type StoragePolicy string

const (
	StorageCleartext StoragePolicy = "cleartext"
	StorageEncrypted StoragePolicy = "encrypted"
)

// ActionMethod is a layering action verb.
type ActionMethod string

const (
	ActionMerge   ActionMethod = "merge"
	ActionReplace ActionMethod = "replace"
	ActionDelete  ActionMethod = "delete"
)

// ID identifies a document by its (schema, name) pair, the stable key
// used throughout the engine in place of object references (design notes
// §9: "materialise both as adjacency tables keyed by stable document
// identifiers").
type ID struct {
	Schema string
	Name   string
}

func (id ID) String() string {
	return fmt.Sprintf("%s/%s", id.Schema, id.Name)
}

// Less gives IDs the (schema, name) total order the orchestrator uses to
// make iteration deterministic (spec §4.10).
func (id ID) Less(other ID) bool {
	if id.Schema != other.Schema {
		return id.Schema < other.Schema
	}
	return id.Name < other.Name
}

// Action is one ordered layering action applied when a child document
// layers atop its parent.
type Action struct {
	Method ActionMethod `yaml:"method"`
	Path   string       `yaml:"path"`
}

// LayeringDefinition configures how a (non-control) document participates
// in the layering forest.
type LayeringDefinition struct {
	Layer          string            `yaml:"layer"`
	Abstract       bool              `yaml:"abstract"`
	ParentSelector map[string]string `yaml:"parentSelector,omitempty"`
	Actions        []Action          `yaml:"actions,omitempty"`
}

// SubstitutionSource names where a substitution pulls its value from.
type SubstitutionSource struct {
	Schema string `yaml:"schema"`
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
}

func (s SubstitutionSource) ID() ID { return ID{Schema: s.Schema, Name: s.Name} }

// SubstitutionDest names where a substitution writes its value.
type SubstitutionDest struct {
	Path    string  `yaml:"path"`
	Pattern *string `yaml:"pattern,omitempty"`
}

// Substitution is one cross-document data-injection rule.
type Substitution struct {
	Src  SubstitutionSource `yaml:"src"`
	Dest SubstitutionDest   `yaml:"dest"`
}

// Metadata is the document envelope's "metadata" key.
type Metadata struct {
	Schema             MetaSchema          `yaml:"schema"`
	Name               string              `yaml:"name"`
	StoragePolicy      StoragePolicy       `yaml:"storagePolicy,omitempty"`
	LayeringDefinition *LayeringDefinition `yaml:"layeringDefinition,omitempty"`
	Labels             map[string]string   `yaml:"labels,omitempty"`
	Replacement        bool                `yaml:"replacement,omitempty"`
	Substitutions      []Substitution      `yaml:"substitutions,omitempty"`
}

// Document is the atomic unit ingested, versioned, and rendered.
type Document struct {
	SchemaName string   `yaml:"schema"`
	Metadata   Metadata `yaml:"metadata"`
	Data       any      `yaml:"data"`

	// Bucket is assigned at ingestion and immutable within a revision; it
	// is not part of the wire envelope itself (status.bucket, spec §3).
	Bucket string `yaml:"-"`
}

// ID returns the document's stable (schema, name) identifier.
func (d Document) ID() ID {
	return ID{Schema: d.SchemaName, Name: d.Metadata.Name}
}

// IsControl reports whether the document is a control document
// (LayeringPolicy, DataSchema, or ValidationPolicy).
func (d Document) IsControl() bool {
	return d.Metadata.Schema == MetaControlV1
}

// IsAbstract reports whether the document is abstract: it participates in
// layering but is never emitted.
func (d Document) IsAbstract() bool {
	return d.Metadata.LayeringDefinition != nil && d.Metadata.LayeringDefinition.Abstract
}

// Layer returns the document's layer name, or "" if it has none (control
// documents, or documents layering never touches).
func (d Document) Layer() string {
	if d.Metadata.LayeringDefinition == nil {
		return ""
	}
	return d.Metadata.LayeringDefinition.Layer
}

// Encrypted reports whether the document's data is a secret-store
// reference token rather than cleartext.
func (d Document) Encrypted() bool {
	return d.Metadata.StoragePolicy == StorageEncrypted
}

const (
	// ReservedNamespaceDeckhand and ReservedNamespaceMetadata are the
	// namespaces a DataSchema's target name may not fall under (spec §3
	// invariants).
	ReservedNamespaceDeckhand = "deckhand/"
	ReservedNamespaceMetadata = "metadata/"
)

// Control document kinds, identified by the schema triple's Kind segment.
const (
	KindLayeringPolicy   = "LayeringPolicy"
	KindDataSchema       = "DataSchema"
	KindValidationPolicy = "ValidationPolicy"
)
