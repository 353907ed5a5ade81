// Package substitution resolves substitutions[] entries across a revision's
// layered documents (spec §4.6): dependency scheduling, cross-document
// value extraction, lazy secret dereference, and pattern-aware injection.
package substitution

import (
	"context"
	"fmt"
	"regexp"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
	"github.com/deckhand/deckhand/internal/secretstore"
	"github.com/deckhand/deckhand/internal/value"
)

// Process applies every concrete document's substitutions in dependency
// order. Documents are addressed by index into docs (see the layering
// package for why document.ID cannot key the forest alone). rendered holds
// each document's post-layering data and is mutated in place as
// substitutions resolve. effective maps a logical (schema, name) source
// onto the index that should supply its data, honoring replacement
// redirection (spec §4.7); pass nil before replacement resolution has run.
// failed marks documents layering already failed, and accumulates
// documents this stage fails; those are excluded from further processing
// and from the final rendered output.
//
// A cycle is fatal-revision and returned as the sole error with no further
// processing. All other failures are fatal-document and are accumulated.
func Process(ctx context.Context, docs []document.Document, rendered map[int]any, secrets *secretstore.Cache, effective map[document.ID]int, failed map[int]bool) []error {
	order, err := topoSort(docs, effective)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, idx := range order {
		if failed[idx] {
			continue
		}
		d := docs[idx]
		for _, sub := range d.Metadata.Substitutions {
			if err := applyOne(ctx, d, idx, sub, rendered, docs, effective, secrets, failed); err != nil {
				errs = append(errs, err)
				failed[idx] = true
				break
			}
		}
	}
	return errs
}

func applyOne(ctx context.Context, dest document.Document, destIdx int, sub document.Substitution, rendered map[int]any, docs []document.Document, effective map[document.ID]int, secrets *secretstore.Cache, failed map[int]bool) error {
	destID := dest.ID()

	srcIdx, ok := resolveIndex(sub.Src.ID(), docs, effective)
	if !ok {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"substitution source %s not found", sub.Src.ID())
	}
	if failed[srcIdx] {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"substitution source %s failed upstream", sub.Src.ID())
	}

	srcData, ok := rendered[srcIdx]
	if !ok {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"substitution source %s has no rendered data", sub.Src.ID())
	}

	val, err := value.Get(srcData, sub.Src.Path)
	if err != nil {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"substitution source path %q not found on %s", sub.Src.Path, sub.Src.ID())
	}

	if docs[srcIdx].Encrypted() {
		token, ok := val.(string)
		if !ok {
			return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
				"encrypted source %s value is not a reference token", sub.Src.ID())
		}
		cleartext, err := secrets.Dereference(ctx, token)
		if err != nil {
			kind := rendererr.KindBarbicanTransient
			if secretstore.IsNotFound(err) {
				kind = rendererr.KindBarbicanNotFound
			}
			return rendererr.New(rendererr.StageSecret, kind, &destID, sub.Dest.Path, "secret dereference failed: %v", err)
		}
		val = string(cleartext)
	}

	destData := rendered[destIdx]

	if sub.Dest.Pattern == nil {
		newData, err := value.Set(destData, sub.Dest.Path, val)
		if err != nil {
			return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
				"destination path could not be set: %v", err)
		}
		rendered[destIdx] = newData
		return nil
	}

	cur, err := value.Get(destData, sub.Dest.Path)
	if err != nil {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"destination path does not exist")
	}
	str, ok := cur.(string)
	if !ok {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"destination value is not a string")
	}

	re, err := regexp.Compile(*sub.Dest.Pattern)
	if err != nil {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"invalid substitution pattern: %v", err)
	}
	loc := re.FindStringIndex(str)
	if loc == nil {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindMissingDocumentPattern, &destID, sub.Dest.Path,
			"pattern %q did not match destination value", *sub.Dest.Pattern)
	}

	replaced := str[:loc[0]] + fmt.Sprint(val) + str[loc[1]:]
	newData, err := value.Set(destData, sub.Dest.Path, replaced)
	if err != nil {
		return rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionFailure, &destID, sub.Dest.Path,
			"destination path could not be set: %v", err)
	}
	rendered[destIdx] = newData
	return nil
}
