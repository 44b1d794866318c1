package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound reports that a backend has no value for a key. Load treats it
// as "first run" and seeds the document.
var ErrNotFound = errors.New("key not found")

// Backend is the byte-level storage contract: read/write/delete a value by
// key. The store layers document encoding, caching and seeding on top, so a
// backend never needs to understand the document shape.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// FileBackend stores each key as a JSON file under Dir (key + ".json").
type FileBackend struct {
	Dir string
}

func (f FileBackend) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f FileBackend) Read(key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (f FileBackend) Write(key string, value []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never truncates the document.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

func (f FileBackend) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryBackend keeps values in a map. Tests use it instead of durable
// storage; the counters make "exactly one write per update" assertable.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte

	Reads  int
	Writes int

	// FailWrites makes every Write return an error, simulating quota
	// exhaustion or unavailable storage.
	FailWrites bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string][]byte{}}
}

func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.FailWrites {
		return fmt.Errorf("write %s: storage unavailable", key)
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Put seeds a raw value without bumping the write counter.
func (m *MemoryBackend) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
}
