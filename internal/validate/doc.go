// Package validate implements the document validator's structural
// checks (spec §4.2): evaluating a decoded YAML/JSON instance against a
// registered JSON schema.
//
// It is deliberately a narrow subset of JSON Schema Draft 2020-12 rather
// than a full implementation: deckhand's DataSchema control documents are
// self-contained (no $ref/$dynamicRef resolution across documents), so
// the evaluator only needs the keywords that subset exercises: one
// function per keyword, returning an *EvaluationError, accumulated into
// an EvaluationResult.
package validate
