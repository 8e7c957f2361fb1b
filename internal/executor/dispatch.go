package executor

import (
	"go.uber.org/zap"

	"fileflow/internal/model"
)

// dispatch maps an operation kind onto its operations-library call and
// returns the submission step's resultLocation (the operation's own output
// path for compress/store, a mock location otherwise) plus an optional
// details override for the success result — empty unless the kind itself
// needs to say something beyond the generic success message.
func (e *Executor) dispatch(f model.File, op model.Operation) (location, details string, err error) {
	switch op.Kind {
	case model.Validate:
		if err := e.ops.Validate(f); err != nil {
			return "", "", err
		}
		return mockLocation(f), "", nil

	case model.MetadataExtraction:
		e.ops.ExtractMetadata(f)
		return mockLocation(f), "", nil

	case model.OCRTextExtraction:
		if _, err := e.ops.PerformOCR(f); err != nil {
			return "", "", err
		}
		return mockLocation(f), "", nil

	case model.ImageResize:
		maxW := op.IntParam("maxW", 800)
		maxH := op.IntParam("maxH", 600)
		if _, err := e.ops.ResizeImage(f, maxW, maxH); err != nil {
			return "", "", err
		}
		return mockLocation(f), "", nil

	case model.FileCompression:
		path, err := e.ops.CompressFile(f)
		if err != nil {
			return "", "", err
		}
		return path, "", nil

	case model.FormatConversion:
		target := op.StringParam("target", "jpg")
		if _, err := e.ops.ConvertFormat(f, target); err != nil {
			return "", "", err
		}
		return mockLocation(f), "", nil

	case model.Storage:
		path, err := e.ops.StoreFile(f)
		if err != nil {
			return "", "", err
		}
		return path, "", nil

	default:
		e.log.Warn("unrecognized operation kind, skipping",
			zap.String("kind", string(op.Kind)), zap.String("file_id", f.ID()))
		return mockLocation(f), "Operation kind not recognized; skipped", nil
	}
}

func mockLocation(f model.File) string {
	return "/mock/location/" + f.Name()
}
