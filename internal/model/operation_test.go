package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperationKindFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, Validate, ParseOperationKind("VALIDATE"))
	assert.Equal(t, Unknown, ParseOperationKind("NOT_A_REAL_KIND"))
}

func TestOperationParamAccessors(t *testing.T) {
	op := NewOperation(ImageResize, map[string]any{"maxW": 800, "maxH": 600.0})

	assert.Equal(t, 800, op.IntParam("maxW", -1))
	assert.Equal(t, 600, op.IntParam("maxH", -1))
	assert.Equal(t, -1, op.IntParam("missing", -1))
	assert.Equal(t, "jpg", op.StringParam("target", "jpg"))
}

func TestNewOperationCopiesParameters(t *testing.T) {
	params := map[string]any{"target": "jpg"}
	op := NewOperation(FormatConversion, params)

	params["target"] = "png"
	assert.Equal(t, "jpg", op.StringParam("target", ""))
}
