// Package operations implements the pure, byte-in/byte-out file transforms:
// no scheduling awareness, no global state beyond a storage directory path
// and the static MIME table below. Each operation is a plain method on
// Library.
package operations

import (
	"regexp"
	"sync"

	"go.uber.org/zap"
)

// supportedMIMETypes is the fixed set Validate accepts.
var supportedMIMETypes = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+\.[A-Za-z0-9]+$`)

// DefaultMaxFileSize is the default size ceiling Validate enforces.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

func isImageType(t string) bool {
	switch t {
	case "jpg", "jpeg", "png", "gif":
		return true
	default:
		return false
	}
}

// Library groups the operations around their only shared state: a storage
// directory and a max file size ceiling. storeMu is the process-wide
// mutual-exclusion lock StoreFile takes around directory creation.
type Library struct {
	storageDir  string
	maxFileSize int64
	storeMu     sync.Mutex
	log         *zap.Logger
}

// New builds a Library. A non-positive maxFileSize falls back to
// DefaultMaxFileSize. A nil log falls back to a no-op logger, matching
// pool.New and executor.New's own nil-logger handling.
func New(storageDir string, maxFileSize int64, log *zap.Logger) *Library {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{storageDir: storageDir, maxFileSize: maxFileSize, log: log}
}
