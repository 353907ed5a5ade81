package substitution

import (
	"sort"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

// topoSort orders concrete documents, by index into docs, so every
// substitution source precedes its destinations (spec §4.6). A cycle of
// substitution references is a fatal-revision SubstitutionCycle.
//
// effective resolves a substitution's logical (schema, name) source onto
// the index that actually supplies its data, honoring replacement
// redirection (spec §4.7); pass nil before replacement resolution runs, in
// which case sources resolve by direct document.ID match.
func topoSort(docs []document.Document, effective map[document.ID]int) ([]int, error) {
	concrete := make(map[int]bool)
	for i, d := range docs {
		if !d.IsControl() {
			concrete[i] = true
		}
	}

	dependents := make(map[int]map[int]bool, len(concrete))
	indegree := make(map[int]int, len(concrete))
	for i := range concrete {
		dependents[i] = make(map[int]bool)
		indegree[i] = 0
	}

	for i := range concrete {
		d := docs[i]
		for _, sub := range d.Metadata.Substitutions {
			srcIdx, ok := resolveIndex(sub.Src.ID(), docs, effective)
			if !ok {
				continue // unresolved source surfaces as SubstitutionFailure during processing
			}
			if dependents[srcIdx][i] {
				continue
			}
			dependents[srcIdx][i] = true
			indegree[i]++
		}
	}

	var ready []int
	for i, n := range indegree {
		if n == 0 {
			ready = append(ready, i)
		}
	}
	sort.Ints(ready)

	order := make([]int, 0, len(concrete))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		var freed []int
		for dep := range dependents[n] {
			indegree[dep]--
			if indegree[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		ready = append(ready, freed...)
		sort.Ints(ready)
	}

	if len(order) != len(concrete) {
		return nil, rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionCycle, nil, "",
			"substitution references form a cycle")
	}
	return order, nil
}

// resolveIndex finds the index supplying id's data: effective's redirect if
// present, otherwise the sole concrete document whose own ID matches.
func resolveIndex(id document.ID, docs []document.Document, effective map[document.ID]int) (int, bool) {
	if effective != nil {
		if idx, ok := effective[id]; ok {
			return idx, true
		}
	}
	for i, d := range docs {
		if !d.IsControl() && d.ID() == id {
			return i, true
		}
	}
	return 0, false
}
