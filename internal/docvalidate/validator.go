// Package docvalidate implements the document validator (spec §4.2):
// envelope and registered-schema validation plus structural layering
// policy conformance, recorded as the engine's two internal validations.
package docvalidate

import (
	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
	"github.com/deckhand/deckhand/internal/report"
	"github.com/deckhand/deckhand/internal/schemaregistry"
	"github.com/deckhand/deckhand/internal/validate"
)

// Run validates every document in docs against registry, recording
// outcomes into builder under deckhand-schema-validation and
// deckhand-policy-validation (spec §4.2). layerOrder is the revision's
// resolved LayeringPolicy order, or nil if none is present. Documents
// whose registered-schema validation fails are marked in failed (keyed
// by slice index, the same identity scheme layering/substitution use,
// so a replacement sharing (schema,name) with a failed original is never
// mistakenly marked too) so the orchestrator excludes them from output
// while the rest of the revision still renders (spec §4.2, §7). Run
// returns every error raised so the orchestrator can decide whether to
// abort (fatal-revision structural errors) or continue.
func Run(registry *schemaregistry.Registry, layerOrder []string, docs []document.Document, builder *report.Builder, failed map[int]bool) []error {
	var errs []error
	schemaOK := true
	policyOK := true

	layerSet := make(map[string]bool, len(layerOrder))
	for _, l := range layerOrder {
		layerSet[l] = true
	}

	for i, d := range docs {
		id := d.ID()

		if d.IsControl() {
			if _, err := document.ParseControl(d); err != nil {
				cerr := rendererr.New(rendererr.StageValidation, rendererr.KindInvalidDocumentFormat, &id, "",
					"control document envelope is malformed: %v", err)
				errs = append(errs, cerr)
				builder.AddError(cerr)
				schemaOK = false
			}
			continue
		}

		schema, ok := registry.Lookup(d.SchemaName)
		if !ok {
			if !d.IsAbstract() {
				err := rendererr.New(rendererr.StageValidation, rendererr.KindUnregisteredSchema, &id, "",
					"no schema registered for %s", d.SchemaName)
				errs = append(errs, err)
				builder.AddError(err)
			}
			continue
		}

		result := validate.Evaluate(schema, d.Data)
		if !result.Valid {
			for _, e := range result.Errors {
				err := rendererr.New(rendererr.StageValidation, rendererr.KindSchemaValidationFailed, &id, e.Path, "%s", e.Message)
				errs = append(errs, err)
				builder.AddError(err)
				schemaOK = false
			}
			failed[i] = true
		}

		if ld := d.Metadata.LayeringDefinition; ld != nil && ld.Layer != "" && (len(layerSet) == 0 || !layerSet[ld.Layer]) {
			err := rendererr.New(rendererr.StageValidation, rendererr.KindLayeringPolicyNotFound, &id, "",
				"layer %q is not present in the layering policy", ld.Layer)
			errs = append(errs, err)
			builder.AddError(err)
			policyOK = false
		}
	}

	if schemaOK {
		builder.SetInternal(report.SchemaValidationName, report.StatusSuccess)
	} else {
		builder.SetInternal(report.SchemaValidationName, report.StatusFailure)
	}
	if policyOK {
		builder.SetInternal(report.PolicyValidationName, report.StatusSuccess)
	} else {
		builder.SetInternal(report.PolicyValidationName, report.StatusFailure)
	}

	return errs
}
