// Package render implements the rendering orchestrator (spec §4.10): the
// fixed pipeline that turns a revision's documents into the rendered
// output set and its validation report.
package render

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/docvalidate"
	"github.com/deckhand/deckhand/internal/layering"
	"github.com/deckhand/deckhand/internal/rendererr"
	"github.com/deckhand/deckhand/internal/replacement"
	"github.com/deckhand/deckhand/internal/report"
	"github.com/deckhand/deckhand/internal/schemaregistry"
	"github.com/deckhand/deckhand/internal/secretstore"
	"github.com/deckhand/deckhand/internal/substitution"
)

// RenderedDocument is one document surviving to final output.
type RenderedDocument struct {
	ID     document.ID
	Data   any
	Bucket string
}

// Result is the outcome of one Render call.
type Result struct {
	CorrelationID string
	Documents     []RenderedDocument
	Report        *report.Report
	Trace         []DocumentTrace
}

// Orchestrator runs the rendering pipeline against a revision. It is safe
// for concurrent use: all per-render state (the schema registry and the
// secret cache) is built fresh inside Render, never shared across calls.
type Orchestrator struct {
	Secrets secretstore.Store
}

// New builds an Orchestrator backed by the given secret store. A nil store
// is valid for revisions that never dereference encrypted data.
func New(secrets secretstore.Store) *Orchestrator {
	return &Orchestrator{Secrets: secrets}
}

// Validate runs only the document validator (spec §4.10 steps 1-2),
// without layering, substitution, or replacement. It is the engine's
// validate() entry point (spec §5).
func (o *Orchestrator) Validate(ctx context.Context, rev document.Revision) *report.Report {
	builder := report.NewBuilder(rev.ID)
	docs := rev.Sorted()

	controls := partitionControls(docs)
	registry := schemaregistry.New()
	if err := registry.Load(controls.dataSchemas); err != nil {
		builder.AddError(rendererr.New(rendererr.StageValidation, registryLoadKind(err), nil, "", "%v", err))
		return builder.Build(controls.validationPolicies, nil)
	}

	layerOrder := layerOrderOrEmpty(controls.layeringPolicies)
	docvalidate.Run(registry, layerOrder, docs, builder, make(map[int]bool))

	return builder.Build(controls.validationPolicies, nil)
}

// Render runs the full pipeline (spec §4.10): validation, layering,
// replacement resolution, substitution, and output filtering. It returns
// partial output alongside the report whenever only individual documents
// failed; a fatal-revision error aborts with no rendered documents at all.
func (o *Orchestrator) Render(ctx context.Context, rev document.Revision) (*Result, error) {
	correlationID := uuid.New().String()
	builder := report.NewBuilder(rev.ID)
	docs := rev.Sorted()

	controls := partitionControls(docs)

	registry := schemaregistry.New()
	if err := registry.Load(controls.dataSchemas); err != nil {
		cerr := rendererr.New(rendererr.StageValidation, registryLoadKind(err), nil, "", "%v", err)
		builder.AddError(cerr)
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	failed := make(map[int]bool)
	layerOrder := layerOrderOrEmpty(controls.layeringPolicies)
	docvalidate.Run(registry, layerOrder, docs, builder, failed)
	if builder.HasFatalRevisionError() {
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	policy, err := layering.Resolve(controls.layeringPolicies)
	if err != nil {
		builder.AddError(err)
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	parents, perrs := layering.SelectParents(policy, docs, failed)
	for _, e := range perrs {
		builder.AddError(e)
	}
	if builder.HasFatalRevisionError() {
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	res, err := replacement.Resolve(docs, parents)
	if err != nil {
		builder.AddError(err)
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered, lerrs := layering.Layer(policy, docs, parents, res.Effective, failed)
	for _, e := range lerrs {
		builder.AddError(e)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secrets := secretstore.NewCache(o.Secrets)
	defer secrets.Clear()
	serrs := substitution.Process(ctx, docs, rendered, secrets, res.Effective, failed)
	for _, e := range serrs {
		builder.AddError(e)
	}
	if builder.HasFatalRevisionError() {
		return &Result{CorrelationID: correlationID, Report: builder.Build(controls.validationPolicies, nil)}, nil
	}

	out := make([]RenderedDocument, 0, len(docs))
	for i, d := range docs {
		if d.IsControl() || d.IsAbstract() || res.Suppressed[i] || failed[i] {
			continue
		}
		data, ok := rendered[i]
		if !ok {
			continue
		}
		out = append(out, RenderedDocument{ID: d.ID(), Data: data, Bucket: d.Bucket})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Less(out[j].ID) })

	return &Result{
		CorrelationID: correlationID,
		Documents:     out,
		Report:        builder.Build(controls.validationPolicies, nil),
		Trace:         buildTrace(docs, failed, res.Suppressed, rendered),
	}, nil
}

func layerOrderOrEmpty(policies []document.LayeringPolicy) []string {
	if len(policies) != 1 {
		return nil
	}
	return policies[0].LayerOrder
}

// registryLoadKind classifies a schemaregistry.Load failure: a DataSchema
// targeting a reserved namespace (spec §3) is distinct from a duplicate
// or malformed registration, even though both abort the revision.
func registryLoadKind(err error) rendererr.Kind {
	if schemaregistry.ErrReservedNamespace.Has(err) {
		return rendererr.KindReservedNamespace
	}
	return rendererr.KindMultipleDataSchemas
}
