package operations

import (
	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// ocrStubText is the fixed placeholder returned in place of real OCR.
const ocrStubText = "OCR text would be returned here"

// PerformOCR succeeds with the stub text for images and PDFs, and fails
// Unsupported for anything else.
func (l *Library) PerformOCR(file model.File) (string, error) {
	if !isImageType(file.Type()) && file.Type() != "pdf" {
		return "", operr.Unsupported("OCR is not supported for file type %q", file.Type())
	}
	return ocrStubText, nil
}
