package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gather-cli/internal/model"
	"gather-cli/internal/mutate"
)

// DocumentKey is the single namespaced key the whole document lives under,
// regardless of backend. Bump the suffix when the wire shape changes.
const DocumentKey = "gather-dashboard-data-v1"

// Store owns the cached document and is the only sanctioned write path.
// The cache is lazily initialized on first Load and shared by pointer until
// Reset; mutations go through Update, which clones, applies, swaps and
// persists.
type Store struct {
	Backend Backend

	// Logf receives degraded-mode warnings (corrupt reads, failed writes).
	// Defaults to stderr.
	Logf func(format string, args ...any)

	// Now is the clock used for seeding. Defaults to time.Now.
	Now func() time.Time

	mu  sync.Mutex
	doc *model.Document
}

func New(b Backend) *Store {
	return &Store{Backend: b}
}

func (s *Store) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load returns the cached document, reading from the backend on first call.
// A missing or malformed durable copy is never fatal: the store logs, falls
// back to seed data and persists the seed.
func (s *Store) Load() (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*model.Document, error) {
	if s.doc != nil {
		return s.doc, nil
	}

	b, err := s.Backend.Read(DocumentKey)
	switch {
	case err == nil:
		var doc model.Document
		if jsonErr := json.Unmarshal(b, &doc); jsonErr != nil {
			s.logf("gather: stored document is unreadable, falling back to seed data: %v", jsonErr)
			return s.seedLocked(), nil
		}
		s.doc = &doc
		return s.doc, nil
	case err == ErrNotFound:
		return s.seedLocked(), nil
	default:
		s.logf("gather: cannot read stored document, falling back to seed data: %v", err)
		return s.seedLocked(), nil
	}
}

func (s *Store) seedLocked() *model.Document {
	s.doc = SeedDocument(s.now())
	s.persistLocked()
	return s.doc
}

// Save replaces the cached document and writes it through. A write failure
// is logged, not returned: the in-memory document stays authoritative for
// the session even when the durable copy is stale.
func (s *Store) Save(doc *model.Document) *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.persistLocked()
	return s.doc
}

func (s *Store) persistLocked() {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.logf("gather: cannot encode document: %v", err)
		return
	}
	if err := s.Backend.Write(DocumentKey, b); err != nil {
		s.logf("gather: cannot persist document (in-memory state kept): %v", err)
	}
}

// Refresh drops the cache and re-reads the durable copy, so a long-running
// TUI picks up edits made by CLI invocations in another terminal.
func (s *Store) Refresh() (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	return s.loadLocked()
}

// Reset discards the cache and the durable copy, regenerates seed data,
// persists it and returns it.
func (s *Store) Reset() (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Backend.Delete(DocumentKey); err != nil {
		return nil, err
	}
	return s.seedLocked(), nil
}

// Update is the mutation protocol: it runs fn against a clone of the cached
// document. On success the clone replaces the cache and is written through
// exactly once, changed or not. On error nothing is swapped and nothing is
// persisted, so a mutator that fails partway leaves no half-edit behind.
func (s *Store) Update(fn func(doc *model.Document) error) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.doc = next
	s.persistLocked()
	return s.doc, nil
}

// FindTagByName is a read-side convenience over the cached document.
func (s *Store) FindTagByName(name string) (*model.Tag, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	t, ok := doc.FindTagByName(name)
	if !ok {
		return nil, nil
	}
	return t, nil
}

const defaultTagColor = "#58b7ff"

// EnsureTag resolves a tag by name, creating it when absent. Resolution is
// idempotent by name, not by call: repeated and case-variant names always
// land on the same tag. An empty name is a no-op returning no tag.
func (s *Store) EnsureTag(name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	existing, err := s.FindTagByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id, err := NewID(KindTag)
	if err != nil {
		return nil, err
	}
	var created model.Tag
	_, err = s.Update(func(doc *model.Document) error {
		// Re-check inside the mutation: another caller may have created
		// the tag between lookup and update.
		if t, ok := doc.FindTagByName(name); ok {
			created = *t
			return nil
		}
		t, err := mutate.AddTag(doc, id, name, defaultTagColor)
		if err != nil {
			return err
		}
		created = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	t, _ := doc.FindTag(created.ID)
	return t, nil
}

// ResolveTagNames maps tag names to ids, creating missing tags. Duplicate
// names collapse onto one id; first-seen order is preserved.
func (s *Store) ResolveTagNames(names []string) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	for _, name := range names {
		t, err := s.EnsureTag(name)
		if err != nil {
			return nil, err
		}
		if t == nil || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		ids = append(ids, t.ID)
	}
	return ids, nil
}
