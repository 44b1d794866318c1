package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverDir walks upward from start looking for a .gather directory, so
// running gather anywhere inside a project picks up that project's data.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".gather")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data directory:
// 1) GATHER_DIR
// 2) upward .gather discovery from the working directory
// 3) ~/.gather
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("GATHER_DIR")); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gather"), nil
}

// OpenBackend picks a backend for dir. An explicit kind ("file"|"sqlite")
// wins; otherwise an existing index.sqlite selects sqlite, and everything
// else falls back to the JSON file backend.
func OpenBackend(dir, kind string) (Backend, error) {
	switch strings.TrimSpace(kind) {
	case "file":
		return FileBackend{Dir: dir}, nil
	case "sqlite":
		return SQLiteBackend{Dir: dir}, nil
	case "":
		if _, err := os.Stat(filepath.Join(dir, sqliteFileName)); err == nil {
			return SQLiteBackend{Dir: dir}, nil
		}
		return FileBackend{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (want file or sqlite)", kind)
	}
}
