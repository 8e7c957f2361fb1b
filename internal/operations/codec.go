package operations

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"fileflow/internal/operr"
)

// encodeImage re-encodes img into target's format. Importing image/jpeg,
// image/png and image/gif for their Encode functions also registers them
// with image.Decode, so a declared type of any of those three (plus
// image/gif's own registration for decoding) decodes without a
// format-specific branch.
func encodeImage(img image.Image, target string) ([]byte, error) {
	var buf bytes.Buffer
	switch target {
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, err
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		return nil, operr.Unsupported("no encoder available for target format %q", target)
	}
	return buf.Bytes(), nil
}
