package operations

import (
	"bytes"
	"image"
	"math"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// ResizeImage scales file down to fit within maxW x maxH using bicubic
// interpolation (draw.CatmullRom). Output dimensions are <= the input's
// and <= the requested maxima; scale is clamped to 1, so this never
// upscales even when both maxima exceed the source dimensions.
func (l *Library) ResizeImage(file model.File, maxW, maxH int) (model.File, error) {
	if !isImageType(file.Type()) {
		return model.File{}, operr.Unsupported("resize is not supported for file type %q", file.Type())
	}
	if maxW <= 0 || maxH <= 0 || maxW == math.MaxInt || maxH == math.MaxInt {
		return model.File{}, operr.InvalidArgument("maxW and maxH must be positive and below the platform maximum")
	}

	src, _, err := image.Decode(bytes.NewReader(file.Content()))
	if err != nil {
		return model.File{}, operr.InvalidArgument("content could not be decoded as an image: %v", err)
	}

	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	scale := math.Min(float64(maxW)/float64(origW), float64(maxH)/float64(origH))
	if scale > 1 {
		scale = 1
	}

	newW := max(1, int(math.Floor(float64(origW)*scale)))
	newH := max(1, int(math.Floor(float64(origH)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	content, err := encodeImage(dst, file.Type())
	if err != nil {
		return model.File{}, operr.Internal(err, "re-encoding resized image")
	}

	return file.WithContent(uuid.NewString(), "resized_"+file.Name(), content, file.Type()), nil
}
