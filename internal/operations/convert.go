package operations

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// ConvertFormat decodes file as an image and re-encodes it as target,
// replacing the file's extension and type. Converting to the file's own
// type is idempotent up to encoder-level byte representation; dimensions
// are always preserved since no scaling happens here.
func (l *Library) ConvertFormat(file model.File, target string) (model.File, error) {
	target = strings.ToLower(target)
	if target == "" {
		return model.File{}, operr.Unsupported("target format is empty")
	}
	if !isImageType(file.Type()) {
		return model.File{}, operr.Unsupported("format conversion is not supported for file type %q", file.Type())
	}

	src, _, err := image.Decode(bytes.NewReader(file.Content()))
	if err != nil {
		return model.File{}, operr.InvalidArgument("content could not be decoded as an image: %v", err)
	}

	content, err := encodeImage(src, target)
	if err != nil {
		return model.File{}, operr.Unsupported("no encoder available for target format %q", target)
	}

	return file.WithContent(uuid.NewString(), replaceExtension(file.Name(), target), content, target), nil
}

func replaceExtension(name, target string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + target
}
