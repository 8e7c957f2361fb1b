package operations

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileflow/internal/model"
	"fileflow/internal/testutil"
)

// Converting to the file's own format keeps it decodable at the same
// dimensions.
func TestConvertFormatPreservesDimensions(t *testing.T) {
	lib := newLibrary(t)
	png := testutil.SmallPNG()
	f := model.NewFile("f1", "photo.png", png, "png", int64(len(png)))

	converted, err := lib.ConvertFormat(f, f.Type())
	require.NoError(t, err)
	assert.Equal(t, "png", converted.Type())
	assert.Equal(t, "photo.png", converted.Name())

	img, _, err := image.Decode(bytes.NewReader(converted.Content()))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestConvertFormatReplacesExtension(t *testing.T) {
	lib := newLibrary(t)
	png := testutil.SmallPNG()
	f := model.NewFile("f1", "photo.png", png, "png", int64(len(png)))

	converted, err := lib.ConvertFormat(f, "jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", converted.Name())
	assert.Equal(t, "jpg", converted.Type())
}

func TestConvertFormatRejectsEmptyTarget(t *testing.T) {
	lib := newLibrary(t)
	png := testutil.SmallPNG()
	f := model.NewFile("f1", "photo.png", png, "png", int64(len(png)))

	_, err := lib.ConvertFormat(f, "")
	assert.Error(t, err)
}

func TestConvertFormatRejectsNonImage(t *testing.T) {
	lib := newLibrary(t)
	f := model.NewFile("f1", "notes.pdf", []byte("not an image"), "pdf", 12)

	_, err := lib.ConvertFormat(f, "jpg")
	assert.Error(t, err)
}
