package layering

import (
	"sort"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

// SelectParents resolves each non-root document's parent by matching its
// layeringDefinition.parentSelector against the labels of documents one
// layer up (spec §4.4). Roots are documents with no parentSelector, or
// documents at the top layer (whose parentSelector, if any, is ignored).
//
// Documents are identified by their position in docs rather than by
// document.ID: a replacement document shares (schema, name) with the
// document it replaces (spec §4.7), so document.ID alone cannot key the
// layering forest.
//
// Failures are document-scoped (MissingParent, IndeterminateDocumentParent):
// the offending index is marked in failed and resolution continues over
// the rest of the revision rather than aborting.
func SelectParents(policy *Policy, docs []document.Document, failed map[int]bool) (map[int]int, []error) {
	byLayer := make(map[string][]int)
	for i, d := range docs {
		if d.IsControl() {
			continue
		}
		byLayer[d.Layer()] = append(byLayer[d.Layer()], i)
	}
	for layer, idxs := range byLayer {
		sort.Slice(idxs, func(a, b int) bool { return docs[idxs[a]].ID().Less(docs[idxs[b]].ID()) })
		byLayer[layer] = idxs
	}

	parents := make(map[int]int)
	var errs []error

	for i, d := range docs {
		if d.IsControl() {
			continue
		}
		ld := d.Metadata.LayeringDefinition
		if ld == nil || policy.IsTopLayer(d.Layer()) || len(ld.ParentSelector) == 0 {
			continue
		}

		id := d.ID()
		parentLayer, ok := policy.ParentLayerOf(d.Layer())
		if !ok {
			errs = append(errs, rendererr.New(rendererr.StageLayering, rendererr.KindLayeringPolicyNotFound, &id, "",
				"layer %q has no parent layer in the layering policy order", d.Layer()))
			failed[i] = true
			continue
		}

		var candidates []int
		for _, ci := range byLayer[parentLayer] {
			if labelsMatch(ld.ParentSelector, docs[ci].Metadata.Labels) {
				candidates = append(candidates, ci)
			}
		}

		switch len(candidates) {
		case 0:
			errs = append(errs, rendererr.New(rendererr.StageLayering, rendererr.KindMissingParent, &id, "",
				"no document in layer %q matches parentSelector", parentLayer))
			failed[i] = true
		case 1:
			parents[i] = candidates[0]
		default:
			errs = append(errs, rendererr.New(rendererr.StageLayering, rendererr.KindIndeterminateDocumentParent, &id, "",
				"%d documents in layer %q match parentSelector", len(candidates), parentLayer))
			failed[i] = true
		}
	}

	return parents, errs
}

func labelsMatch(selector, labels map[string]string) bool {
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}
