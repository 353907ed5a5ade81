// Package value implements structural operations over the dynamically
// typed document payload ("data" in a deckhand document).
//
// A Value is the recursive tagged variant described by the rendering
// engine's design notes: Null, Bool, Int/Float (represented as the Go
// numeric types that a YAML or JSON decoder produces), String, Sequence
// ([]any), or Mapping (map[string]any). There is no dedicated Go type for
// it; instead Get/Set/Delete/DeepMerge/DeepCopy operate on `any` directly,
// the same way the schema evaluators (type.go, utils.go) switch on
// interface{} rather than introduce a boxed value type.
package value
