package layering

import (
	"fmt"
	"sort"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
	"github.com/deckhand/deckhand/internal/value"
)

// Layer walks the layering forest root-first (spec §4.5), applying each
// non-root document's actions atop a deep copy of its parent's
// already-layered data. Roots render as their own data, untouched.
//
// Documents are addressed by their index in docs (see SelectParents).
// effective maps a document's logical (schema, name) identity onto the
// index that should actually supply its rendered data: ordinarily a
// document's own index, but redirected to a replacement's index once
// internal/replacement has resolved the revision's replacement pairs
// (spec §4.7, "transparently resolves to the replacement's rendered
// data"). Pass nil before replacement resolution has run.
//
// failed is both an input and an output: documents already marked failed
// (by parent selection) are skipped, and any document whose action
// application fails, or whose effective parent failed, is added to it so
// the orchestrator can exclude its descendants and substitutions
// downstream.
func Layer(policy *Policy, docs []document.Document, parents map[int]int, effective map[document.ID]int, failed map[int]bool) (map[int]any, []error) {
	type node struct {
		idx int
		doc document.Document
	}
	var ordered []node
	for i, d := range docs {
		if !d.IsControl() {
			ordered = append(ordered, node{i, d})
		}
	}
	sort.Slice(ordered, func(a, b int) bool {
		la, lb := layerIndex(policy, ordered[a].doc), layerIndex(policy, ordered[b].doc)
		if la != lb {
			return la < lb
		}
		return ordered[a].doc.ID().Less(ordered[b].doc.ID())
	})

	rendered := make(map[int]any, len(ordered))
	var errs []error

	for _, n := range ordered {
		i, d := n.idx, n.doc
		if failed[i] {
			continue
		}

		parentIdx, hasParent := parents[i]
		if !hasParent {
			rendered[i] = value.DeepCopy(d.Data)
			continue
		}

		effIdx := parentIdx
		if effective != nil {
			// r == i happens when i is itself the replacement that now
			// owns the parent's identity: its own structural parent edge
			// (already resolved by SelectParents) must not redirect onto
			// itself.
			if r, ok := effective[docs[parentIdx].ID()]; ok && r != i {
				effIdx = r
			}
		}
		if failed[effIdx] {
			failed[i] = true
			continue
		}
		parentData, ok := rendered[effIdx]
		if !ok {
			failed[i] = true
			continue
		}

		data := value.DeepCopy(parentData)
		var actionErr error
		for _, action := range d.Metadata.LayeringDefinition.Actions {
			data, actionErr = applyAction(data, action, d)
			if actionErr != nil {
				errs = append(errs, actionErr)
				failed[i] = true
				break
			}
		}
		if failed[i] {
			continue
		}
		rendered[i] = data
	}

	return rendered, errs
}

func layerIndex(policy *Policy, d document.Document) int {
	if policy.Empty() {
		return 0
	}
	if i, ok := policy.Index(d.Layer()); ok {
		return i
	}
	return len(policy.Order)
}

func applyAction(base any, action document.Action, doc document.Document) (any, error) {
	id := doc.ID()

	switch action.Method {
	case document.ActionMerge:
		ownVal, err := value.Get(doc.Data, action.Path)
		if err != nil {
			return base, nil
		}
		curAtPath, err := value.Get(base, action.Path)
		if err != nil {
			curAtPath = nil
		}
		merged := value.DeepMerge(curAtPath, ownVal)
		out, err := value.Set(base, action.Path, merged)
		if err != nil {
			return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
				"merge action: %v", err)
		}
		return out, nil

	case document.ActionReplace:
		if _, err := value.Get(base, action.Path); err != nil {
			return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
				"replace action: path does not exist on parent-derived data")
		}
		ownVal, err := value.Get(doc.Data, action.Path)
		if err != nil {
			return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
				"replace action: path does not exist on document's own data")
		}
		out, err := value.Set(base, action.Path, ownVal)
		if err != nil {
			return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
				"replace action: %v", err)
		}
		return out, nil

	case document.ActionDelete:
		out, err := value.Delete(base, action.Path)
		if err != nil {
			return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
				"delete action: path does not exist on parent-derived data")
		}
		return out, nil

	default:
		return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMissingDocumentKey, &id, action.Path,
			"unknown layering action method %q", fmt.Sprint(action.Method))
	}
}
