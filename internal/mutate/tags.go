package mutate

import (
	"strings"

	"gather-cli/internal/model"
)

// AddTag appends a tag. Name uniqueness is the caller's job: the store
// resolves existing names (case-insensitively) before creating.
func AddTag(doc *model.Document, id, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, EmptyFieldError{Field: "tag name"}
	}
	doc.Tags = append(doc.Tags, model.Tag{ID: id, Name: name, Color: color})
	return &doc.Tags[len(doc.Tags)-1], nil
}
