package operations

import (
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// CompressFile gzips file's content into a fresh temporary directory and
// returns the written path.
func (l *Library) CompressFile(file model.File) (string, error) {
	dir, err := os.MkdirTemp("", "fileflow-compress-*")
	if err != nil {
		return "", operr.IO(err, "creating temporary directory for compression")
	}

	path := filepath.Join(dir, file.Name()+".gz")
	out, err := os.Create(path)
	if err != nil {
		return "", operr.IO(err, "creating compressed output file %q", path)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := gz.Write(file.Content()); err != nil {
		gz.Close()
		return "", operr.IO(err, "writing compressed content to %q", path)
	}
	if err := gz.Close(); err != nil {
		return "", operr.IO(err, "closing gzip writer for %q", path)
	}

	return path, nil
}
