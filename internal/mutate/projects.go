// Package mutate holds the document-editing functions applied inside the
// store's update protocol. Each function validates its input before
// touching the document, so a rejected edit leaves no partial change.
package mutate

import (
	"strings"

	"gather-cli/internal/model"
)

// CreateProject appends a project. The id is supplied by the caller (ids
// are generated outside the mutator so a retried mutation stays stable).
func CreateProject(doc *model.Document, id, name string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, EmptyFieldError{Field: "project name"}
	}
	doc.Projects = append(doc.Projects, model.Project{ID: id, Name: name})
	return &doc.Projects[len(doc.Projects)-1], nil
}

// RenameProject is the only project edit the product supports. Projects are
// never deleted; cards referencing an unknown project id read as
// "unassigned".
func RenameProject(doc *model.Document, id, name string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, EmptyFieldError{Field: "project name"}
	}
	p, ok := doc.FindProject(id)
	if !ok {
		return nil, NotFoundError{Kind: "project", ID: id}
	}
	p.Name = name
	return p, nil
}
