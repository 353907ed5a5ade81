// Package store defines the revision provider contract external
// collaborators implement (spec §6), plus the diff operation named in
// the engine's testable properties (S5).
package store

import (
	"context"

	"github.com/deckhand/deckhand/internal/document"
)

// RevisionProvider loads a revision's documents from durable storage.
type RevisionProvider interface {
	Documents(ctx context.Context, revisionID int) ([]document.Document, error)
}

// DiffStatus classifies how a document's identity changed between two
// revisions.
type DiffStatus string

const (
	DiffCreated    DiffStatus = "created"
	DiffModified   DiffStatus = "modified"
	DiffDeleted    DiffStatus = "deleted"
	DiffUnmodified DiffStatus = "unmodified"
)

// Diff compares two revisions' document sets by (schema, name) identity
// and content (spec §8, S5). Revision0 (the empty revision) on either
// side behaves as the distinguished empty document set: diff(0, A) marks
// everything in A as created, diff(X, X) on a non-empty revision marks
// everything unmodified, and diff(0, 0) is empty.
func Diff(revisionA, revisionB document.Revision) map[document.ID]DiffStatus {
	byA := revisionA.ByID()
	byB := revisionB.ByID()

	out := make(map[document.ID]DiffStatus, len(byA)+len(byB))
	for id, a := range byA {
		b, ok := byB[id]
		if !ok {
			out[id] = DiffDeleted
			continue
		}
		if documentsEqual(a, b) {
			out[id] = DiffUnmodified
		} else {
			out[id] = DiffModified
		}
	}
	for id := range byB {
		if _, ok := byA[id]; !ok {
			out[id] = DiffCreated
		}
	}
	return out
}

func documentsEqual(a, b document.Document) bool {
	ab, err := document.EncodeStream([]document.Document{a})
	if err != nil {
		return false
	}
	bb, err := document.EncodeStream([]document.Document{b})
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
