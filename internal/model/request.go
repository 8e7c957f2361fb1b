package model

import "errors"

// ErrNoFiles is returned by NewRequest when the caller supplies an empty
// file list — a request must carry at least one file.
var ErrNoFiles = errors.New("request must contain at least one file")

// Request is the immutable description of a batch of files and the
// operations to run against them. perFileOperations overrides
// defaultOperations for any file whose id appears as a key.
type Request struct {
	files             []File
	defaultOperations []OperationKind
	perFileOperations map[string][]OperationKind
}

// NewRequest defensively copies every collection so the caller's slices and
// maps can be reused afterward without affecting the Request.
func NewRequest(files []File, defaultOperations []OperationKind, perFileOperations map[string][]OperationKind) (Request, error) {
	if len(files) == 0 {
		return Request{}, ErrNoFiles
	}

	filesCopy := make([]File, len(files))
	copy(filesCopy, files)

	defaultsCopy := make([]OperationKind, len(defaultOperations))
	copy(defaultsCopy, defaultOperations)

	perFileCopy := make(map[string][]OperationKind, len(perFileOperations))
	for id, ops := range perFileOperations {
		opsCopy := make([]OperationKind, len(ops))
		copy(opsCopy, ops)
		perFileCopy[id] = opsCopy
	}

	return Request{
		files:             filesCopy,
		defaultOperations: defaultsCopy,
		perFileOperations: perFileCopy,
	}, nil
}

// Files returns a defensive copy of the request's file sequence.
func (r Request) Files() []File {
	cp := make([]File, len(r.files))
	copy(cp, r.files)
	return cp
}

// DefaultOperations returns a defensive copy of the default operation list.
func (r Request) DefaultOperations() []OperationKind {
	cp := make([]OperationKind, len(r.defaultOperations))
	copy(cp, r.defaultOperations)
	return cp
}

// OperationsFor returns the operation list that applies to fileID: its
// per-file override if one was supplied, otherwise the request default.
func (r Request) OperationsFor(fileID string) []OperationKind {
	if ops, ok := r.perFileOperations[fileID]; ok {
		cp := make([]OperationKind, len(ops))
		copy(cp, ops)
		return cp
	}
	return r.DefaultOperations()
}
