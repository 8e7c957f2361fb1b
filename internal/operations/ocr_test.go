package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileflow/internal/model"
	"fileflow/internal/testutil"
)

func TestPerformOCRStubOnImage(t *testing.T) {
	lib := newLibrary(t)
	f := model.NewFile("x1", "test.png", testutil.TinyPNG(), "png", int64(len(testutil.TinyPNG())))

	text, err := lib.PerformOCR(f)
	require.NoError(t, err)
	assert.Equal(t, ocrStubText, text)
}

func TestPerformOCRUnsupportedForNonImageNonPDF(t *testing.T) {
	lib := newLibrary(t)
	f := model.NewFile("x1", "notes.txt", []byte("hi"), "txt", 2)

	_, err := lib.PerformOCR(f)
	assert.Error(t, err)
}
