package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizeKnownKindEnglish(t *testing.T) {
	got := Localize("en", "InvalidDocumentFormat")
	assert.NotEqual(t, "InvalidDocumentFormat", got)
	assert.NotEmpty(t, got)
}

func TestLocalizeKnownKindFrench(t *testing.T) {
	en := Localize("en", "SchemaValidationFailed")
	fr := Localize("fr", "SchemaValidationFailed")
	assert.NotEqual(t, en, fr)
}

func TestLocalizeUnknownKindFallsBackToKind(t *testing.T) {
	got := Localize("en", "NotARealKind")
	assert.Equal(t, "NotARealKind", got)
}
