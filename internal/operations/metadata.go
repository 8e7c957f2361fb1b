package operations

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"net/http"

	"go.uber.org/zap"

	"fileflow/internal/model"
)

// ExtractMetadata always returns the six required keys; width/height are
// added only when content decodes as an image. sniffedType is a
// supplemental, informational field from net/http.DetectContentType — it is
// never used to fail validation, since validate's contract is fixed to the
// declared type field.
//
// decodeAttempted records whether file's declared type made it a decode
// candidate at all, so the debug log below can distinguish "not an image"
// (decodeAttempted false, nothing logged) from "image decode failed"
// (decodeAttempted true, decode itself returned an error).
func (l *Library) ExtractMetadata(file model.File) map[string]any {
	content := file.Content()
	sum := sha256.Sum256(content)

	meta := map[string]any{
		"fileId":      file.ID(),
		"fileName":    file.Name(),
		"fileType":    file.Type(),
		"sizeBytes":   file.Size(),
		"mimeType":    file.Type(),
		"checksum":    hex.EncodeToString(sum[:]),
		"sniffedType": http.DetectContentType(content),
	}

	decodeAttempted := isImageType(file.Type())
	if !decodeAttempted {
		return meta
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		l.log.Debug("metadata extraction: declared image type failed to decode",
			zap.String("file_id", file.ID()),
			zap.String("file_type", file.Type()),
			zap.Error(err),
		)
		return meta
	}

	meta["width"] = cfg.Width
	meta["height"] = cfg.Height
	return meta
}
