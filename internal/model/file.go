package model

import "strings"

// File is an immutable tuple describing one uploaded file. Content is
// defensively copied on construction and on every read so callers can never
// observe or induce a mutation through a shared backing array.
type File struct {
	id      string
	name    string
	content []byte
	typ     string
	size    int64
}

// NewFile constructs a File, lower-casing typ and copying content so the
// caller's buffer can be reused or mutated afterward without effect.
func NewFile(id, name string, content []byte, typ string, size int64) File {
	cp := make([]byte, len(content))
	copy(cp, content)
	return File{
		id:      id,
		name:    name,
		content: cp,
		typ:     strings.ToLower(typ),
		size:    size,
	}
}

func (f File) ID() string   { return f.id }
func (f File) Name() string { return f.name }
func (f File) Type() string { return f.typ }
func (f File) Size() int64  { return f.size }

// Content returns a defensive copy; mutating the result never affects f.
func (f File) Content() []byte {
	cp := make([]byte, len(f.content))
	copy(cp, f.content)
	return cp
}

// WithContent returns a new File built from the given id, name, content and
// type, with size set to len(content); nothing is taken over from f — used
// by operations that produce a derived file (resize, convert).
func (f File) WithContent(id, name string, content []byte, typ string) File {
	return NewFile(id, name, content, typ, int64(len(content)))
}
