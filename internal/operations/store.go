package operations

import (
	"os"
	"path/filepath"
	"strings"

	"fileflow/internal/model"
	"fileflow/internal/operr"
)

// StoreFile writes file under <storageDir>/<type>/<fileId>_<fileName>,
// taking the Library's process-wide lock only around directory creation.
// Individual writes are independent, so concurrent stores of the same
// target path are last-writer-wins.
func (l *Library) StoreFile(file model.File) (string, error) {
	dir := filepath.Join(l.storageDir, strings.ToLower(file.Type()))

	l.storeMu.Lock()
	err := os.MkdirAll(dir, 0o755)
	l.storeMu.Unlock()
	if err != nil {
		return "", operr.IO(err, "creating storage directory %q", dir)
	}

	path := filepath.Join(dir, file.ID()+"_"+file.Name())
	if err := os.WriteFile(path, file.Content(), 0o644); err != nil {
		return "", operr.IO(err, "writing stored file %q", path)
	}

	return path, nil
}
