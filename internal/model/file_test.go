package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileContentIsDefensivelyCopied(t *testing.T) {
	original := []byte{1, 2, 3}
	f := NewFile("id1", "a.png", original, "PNG", 3)

	original[0] = 99
	assert.Equal(t, byte(1), f.Content()[0], "mutating the caller's buffer must not affect the file")

	got := f.Content()
	got[0] = 42
	assert.Equal(t, byte(1), f.Content()[0], "mutating a returned copy must not affect the file")
}

func TestNewFileLowercasesType(t *testing.T) {
	f := NewFile("id1", "a.PNG", nil, "PNG", 0)
	assert.Equal(t, "png", f.Type())
}

func TestWithContentProducesIndependentFile(t *testing.T) {
	base := NewFile("id1", "a.png", []byte{1, 2}, "png", 2)
	derived := base.WithContent("id2", "resized_a.png", []byte{9, 9, 9}, "png")

	assert.Equal(t, "id2", derived.ID())
	assert.Equal(t, "resized_a.png", derived.Name())
	assert.Equal(t, int64(3), derived.Size())
	assert.Equal(t, []byte{1, 2}, base.Content())
}
