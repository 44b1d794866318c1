package model

import (
	"encoding/json"
	"testing"
	"time"
)

func sampleDoc() *Document {
	return &Document{
		Projects: []Project{{ID: "project-a", Name: "Alpha"}},
		Tags: []Tag{
			{ID: "tag-go", Name: "Go", Color: "#00add8"},
			{ID: "tag-db", Name: "Databases", Color: "#4fd1c5"},
		},
		Cards: []Card{
			{
				ID:        "card-one",
				Title:     "First",
				ProjectID: "project-a",
				Tags:      []string{"tag-go"},
				CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Sessions: []Session{
					{ID: "session-one", Content: "note", UpdatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
				},
			},
		},
	}
}

func TestFindTagByName(t *testing.T) {
	t.Parallel()
	doc := sampleDoc()

	tests := []struct {
		in     string
		wantID string
		ok     bool
	}{
		{"Go", "tag-go", true},
		{"go", "tag-go", true},
		{"  GO  ", "tag-go", true},
		{"databases", "tag-db", true},
		{"rust", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := doc.FindTagByName(tt.in)
		if ok != tt.ok {
			t.Fatalf("FindTagByName(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got.ID != tt.wantID {
			t.Fatalf("FindTagByName(%q) = %s, want %s", tt.in, got.ID, tt.wantID)
		}
	}
}

func TestFindProjectBlankID(t *testing.T) {
	t.Parallel()
	doc := sampleDoc()
	if _, ok := doc.FindProject(""); ok {
		t.Fatal("blank id matched a project")
	}
	if _, ok := doc.FindProject("project-a"); !ok {
		t.Fatal("known project not found")
	}
}

func TestTouched(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	c := Card{CreatedAt: created}
	if got := c.Touched(); !got.Equal(created) {
		t.Fatalf("Touched without updatedAt = %v, want %v", got, created)
	}
	c.UpdatedAt = updated
	if got := c.Touched(); !got.Equal(updated) {
		t.Fatalf("Touched with updatedAt = %v, want %v", got, updated)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	doc := sampleDoc()
	clone := doc.Clone()

	clone.Projects[0].Name = "changed"
	clone.Tags[0].Color = "#000000"
	clone.Cards[0].Tags[0] = "tag-other"
	clone.Cards[0].Sessions[0].Content = "changed"
	clone.Cards = append(clone.Cards, Card{ID: "card-two"})

	if doc.Projects[0].Name != "Alpha" {
		t.Fatal("project edit leaked into the original")
	}
	if doc.Tags[0].Color != "#00add8" {
		t.Fatal("tag edit leaked into the original")
	}
	if doc.Cards[0].Tags[0] != "tag-go" {
		t.Fatal("tag-id edit leaked into the original")
	}
	if doc.Cards[0].Sessions[0].Content != "note" {
		t.Fatal("session edit leaked into the original")
	}
	if len(doc.Cards) != 1 {
		t.Fatal("appended card leaked into the original")
	}
}

func TestDocumentJSONShape(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(sampleDoc())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"projects", "tags", "cards"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("document json missing %q: %s", key, raw)
		}
	}
	card := m["cards"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "title", "tags", "createdAt", "updatedAt", "sessions"} {
		if _, ok := card[key]; !ok {
			t.Fatalf("card json missing %q: %s", key, raw)
		}
	}
}
