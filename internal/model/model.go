package model

import (
	"strings"
	"time"
)

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Session is one Markdown note entry attached to a card. Sessions cannot
// exist outside their parent card.
type Session struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Card struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	ProjectID string `json:"projectId,omitempty"`

	// Tags holds tag ids in insertion order. Set semantics: no duplicates.
	// Consumers must skip ids that no longer resolve to a tag.
	Tags []string `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Sessions []Session `json:"sessions"`
}

// Document is the root aggregate and the unit of persistence: every load
// and save moves the whole document.
type Document struct {
	Projects []Project `json:"projects"`
	Tags     []Tag     `json:"tags"`
	Cards    []Card    `json:"cards"`
}

func (d *Document) FindProject(id string) (*Project, bool) {
	if strings.TrimSpace(id) == "" {
		return nil, false
	}
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i], true
		}
	}
	return nil, false
}

func (d *Document) FindTag(id string) (*Tag, bool) {
	for i := range d.Tags {
		if d.Tags[i].ID == id {
			return &d.Tags[i], true
		}
	}
	return nil, false
}

// FindTagByName matches the trimmed name case-insensitively. Tag names are
// the natural key: two tags never differ only by case.
func (d *Document) FindTagByName(name string) (*Tag, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, false
	}
	for i := range d.Tags {
		if strings.ToLower(d.Tags[i].Name) == normalized {
			return &d.Tags[i], true
		}
	}
	return nil, false
}

func (d *Document) FindCard(id string) (*Card, bool) {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i], true
		}
	}
	return nil, false
}

func (c *Card) FindSession(id string) (*Session, bool) {
	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			return &c.Sessions[i], true
		}
	}
	return nil, false
}

// Touched returns the card's effective recency: updatedAt, falling back to
// createdAt when updatedAt was never set.
func (c *Card) Touched() time.Time {
	if c.UpdatedAt.IsZero() {
		return c.CreatedAt
	}
	return c.UpdatedAt
}

// Clone returns a deep copy. Mutators run against a clone so a failed
// mutation never leaves a half-edited document in the cache.
func (d *Document) Clone() *Document {
	out := &Document{
		Projects: make([]Project, len(d.Projects)),
		Tags:     make([]Tag, len(d.Tags)),
		Cards:    make([]Card, len(d.Cards)),
	}
	copy(out.Projects, d.Projects)
	copy(out.Tags, d.Tags)
	for i := range d.Cards {
		c := d.Cards[i]
		c.Tags = append([]string(nil), c.Tags...)
		c.Sessions = append([]Session(nil), c.Sessions...)
		out.Cards[i] = c
	}
	return out
}
