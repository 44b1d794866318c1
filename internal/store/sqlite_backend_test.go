package store

import (
	"testing"
	"time"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	t.Parallel()
	b := SQLiteBackend{Dir: t.TempDir()}

	if _, err := b.Read(DocumentKey); err != ErrNotFound {
		t.Fatalf("Read on empty db = %v, want ErrNotFound", err)
	}

	if err := b.Write(DocumentKey, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.Write(DocumentKey, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Read(DocumentKey)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("Read = %q, want latest write", got)
	}

	if err := b.Delete(DocumentKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := b.Read(DocumentKey); err != ErrNotFound {
		t.Fatalf("Read after Delete = %v, want ErrNotFound", err)
	}
}

func TestSQLiteBackendBacksStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	s := New(SQLiteBackend{Dir: dir})
	s.Logf = t.Logf
	s.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Cards) != 4 {
		t.Fatalf("seed has %d cards", len(doc.Cards))
	}

	fresh := New(SQLiteBackend{Dir: dir})
	fresh.Logf = t.Logf
	reloaded, err := fresh.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Cards) != len(doc.Cards) {
		t.Fatalf("reloaded %d cards, want %d", len(reloaded.Cards), len(doc.Cards))
	}
	if !reloaded.Cards[0].UpdatedAt.Equal(doc.Cards[0].UpdatedAt) {
		t.Fatalf("timestamps drifted across the sqlite round trip: %v vs %v",
			reloaded.Cards[0].UpdatedAt, doc.Cards[0].UpdatedAt)
	}
}
