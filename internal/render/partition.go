package render

import "github.com/deckhand/deckhand/internal/document"

// controlSet holds a revision's control documents sorted into their three
// kinds (spec §3). Malformed control documents are skipped here; the
// document validator records them as InvalidDocumentFormat separately.
type controlSet struct {
	layeringPolicies   []document.LayeringPolicy
	dataSchemas        []document.DataSchema
	validationPolicies []document.ValidationPolicy
}

func partitionControls(docs []document.Document) controlSet {
	var cs controlSet
	for _, d := range docs {
		if !d.IsControl() {
			continue
		}
		ctrl, err := document.ParseControl(d)
		if err != nil {
			continue
		}
		switch {
		case ctrl.LayeringPolicy != nil:
			cs.layeringPolicies = append(cs.layeringPolicies, *ctrl.LayeringPolicy)
		case ctrl.DataSchema != nil:
			cs.dataSchemas = append(cs.dataSchemas, *ctrl.DataSchema)
		case ctrl.ValidationPolicy != nil:
			cs.validationPolicies = append(cs.validationPolicies, *ctrl.ValidationPolicy)
		}
	}
	return cs
}
