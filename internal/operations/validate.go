package operations

import (
	"bytes"
	"image"
	"strings"

	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// Validate checks a file's metadata and content, returning an
// InvalidArgument error describing the first rule it fails, or nil when
// every rule passes.
func (l *Library) Validate(file model.File) error {
	if file.Name() == "" {
		return operr.InvalidArgument("File name is empty")
	}
	if file.Type() == "" {
		return operr.InvalidArgument("File type is empty")
	}
	if file.Size() <= 0 {
		return operr.InvalidArgument("File is empty or has non-positive size")
	}
	if file.Size() > l.maxFileSize {
		return operr.InvalidArgument("file size %d exceeds the maximum of %d bytes", file.Size(), l.maxFileSize)
	}
	if strings.Contains(file.Name(), "..") || strings.Contains(file.Name(), "/") {
		return operr.InvalidArgument("file name %q is an invalid file name (path traversal)", file.Name())
	}
	if !validNamePattern.MatchString(file.Name()) {
		return operr.InvalidArgument("file name %q does not match the required pattern", file.Name())
	}
	if !supportedMIMETypes[file.Type()] {
		return operr.InvalidArgument("file type %q is not in the supported MIME table", file.Type())
	}
	if isImageType(file.Type()) {
		if _, _, err := image.Decode(bytes.NewReader(file.Content())); err != nil {
			return operr.InvalidArgument("declared image type %q could not be decoded: %v", file.Type(), err)
		}
	}
	return nil
}
