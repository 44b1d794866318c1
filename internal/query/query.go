// Package query derives the visible card list from the document and the
// current filter state. It is pure: same document + same filter always
// yields the same ordered result, with no mutation and no I/O.
package query

import (
	"sort"
	"strings"

	"gather-cli/internal/model"
)

// Filter is the dashboard's filter state. Zero values mean "no filter":
// every dimension is optional and active dimensions combine with AND.
type Filter struct {
	ProjectID string
	TagID     string
	Search    string
}

func (f Filter) Active() bool {
	return f.ProjectID != "" || f.TagID != "" || strings.TrimSpace(f.Search) != ""
}

// Apply returns the cards satisfying the filter, newest-touched first.
// Search matches the title only (not link, not session content),
// case-insensitively. Ties keep document order (stable sort).
func Apply(doc *model.Document, f Filter) []model.Card {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Card, 0, len(doc.Cards))
	for _, c := range doc.Cards {
		if f.ProjectID != "" && c.ProjectID != f.ProjectID {
			continue
		}
		if f.TagID != "" && !hasTag(c, f.TagID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), search) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Touched().After(out[j].Touched())
	})
	return out
}

func hasTag(c model.Card, tagID string) bool {
	for _, id := range c.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// CardCountByProject backs the sidebar meta counts.
func CardCountByProject(doc *model.Document, projectID string) int {
	n := 0
	for _, c := range doc.Cards {
		if c.ProjectID == projectID {
			n++
		}
	}
	return n
}

// CardCountByTag counts cards carrying the tag.
func CardCountByTag(doc *model.Document, tagID string) int {
	n := 0
	for _, c := range doc.Cards {
		if hasTag(c, tagID) {
			n++
		}
	}
	return n
}

// TagsByName returns the document's tags sorted by name for display. The
// document's own tag order (creation order) is left untouched.
func TagsByName(doc *model.Document) []model.Tag {
	out := append([]model.Tag(nil), doc.Tags...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
