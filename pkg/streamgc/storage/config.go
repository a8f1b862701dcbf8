package storage

import (
	"fmt"

	"github.com/randalmurphal/streamgc/pkg/streamgc/config"
)

// Backend names accepted by FromConfig.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// FromConfig builds a Store from configuration.
//
// Recognized keys:
//   - backend: "memory", "file", or "sqlite" (default "memory")
//   - root:    root directory for the file backend (default "./artifacts")
//   - path:    database path for the sqlite backend (default "./artifacts.db")
func FromConfig(cfg config.Config) (Store, error) {
	backend := cfg.String("backend", BackendMemory)
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.String("root", "./artifacts"))
	case BackendSQLite:
		return NewSQLiteStore(cfg.String("path", "./artifacts.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
