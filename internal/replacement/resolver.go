// Package replacement enforces replacement-document semantics (spec §4.7):
// a document with metadata.replacement == true takes over its parent's
// (schema, name) identity in rendered output.
package replacement

import (
	"sort"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

// Resolution is the outcome of resolving a revision's replacement
// documents against its layering forest.
type Resolution struct {
	// Effective maps a document's logical (schema, name) identity onto the
	// index in the revision's document slice that should actually supply
	// its rendered data: ordinarily the document's own index, redirected
	// to a replacement's index for every replaced pair.
	Effective map[document.ID]int
	// Suppressed holds the indices of documents that have been replaced;
	// the orchestrator excludes them from final output.
	Suppressed map[int]bool
}

// Resolve validates every replacement document in docs and builds the
// Effective/Suppressed tables the layering engine and substitution engine
// consult afterward. parents is the parent-selection result (see the
// layering package); Resolve must run after parent selection and before
// the layering engine re-derives parent data, since Layer consults
// Effective to redirect a replaced parent's data onto its replacement.
//
// InvalidReplacement and SingletonReplacement are fatal-revision: the
// first violation aborts resolution entirely.
func Resolve(docs []document.Document, parents map[int]int) (*Resolution, error) {
	effective := make(map[document.ID]int, len(docs))
	for i, d := range docs {
		if !d.IsControl() {
			effective[d.ID()] = i
		}
	}
	suppressed := make(map[int]bool)

	var replacements []int
	for i, d := range docs {
		if !d.IsControl() && d.Metadata.Replacement {
			replacements = append(replacements, i)
		}
	}
	sort.Slice(replacements, func(a, b int) bool { return docs[replacements[a]].ID().Less(docs[replacements[b]].ID()) })

	for _, i := range replacements {
		d := docs[i]
		id := d.ID()

		parentIdx, ok := parents[i]
		if !ok {
			return nil, rendererr.New(rendererr.StageReplacement, rendererr.KindInvalidReplacement, &id, "",
				"replacement document has no parent")
		}
		parentDoc := docs[parentIdx]
		if parentDoc.Metadata.Replacement {
			return nil, rendererr.New(rendererr.StageReplacement, rendererr.KindSingletonReplacement, &id, "",
				"replacement parent %s is itself a replacement", parentDoc.ID())
		}
		if parentDoc.ID() != id {
			return nil, rendererr.New(rendererr.StageReplacement, rendererr.KindInvalidReplacement, &id, "",
				"replacement document must share (schema, name) with its parent %s", parentDoc.ID())
		}
		if parentDoc.Layer() == d.Layer() {
			return nil, rendererr.New(rendererr.StageReplacement, rendererr.KindInvalidReplacement, &id, "",
				"replacement document must occupy a different layer than its parent")
		}

		effective[id] = i
		suppressed[parentIdx] = true
	}

	return &Resolution{Effective: effective, Suppressed: suppressed}, nil
}
