// Package publish renders cards to portable Markdown and HTML documents.
package publish

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"gather-cli/internal/model"
)

// RenderCardMarkdown renders one card as a standalone Markdown page:
// title, meta block, tags, then sessions newest-first.
func RenderCardMarkdown(doc *model.Document, cardID string) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("missing document")
	}
	card, ok := doc.FindCard(strings.TrimSpace(cardID))
	if !ok {
		return "", fmt.Errorf("card not found: %s", cardID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(card.Title))
	writeLn("")

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + card.ID)
	if card.Link != "" {
		writeLn("- Link: " + card.Link)
	}
	if p, ok := doc.FindProject(card.ProjectID); ok {
		writeLn("- Project: " + p.Name + " (" + p.ID + ")")
	} else {
		writeLn("- Project: unassigned")
	}
	writeLn("- Created: " + card.CreatedAt.UTC().Format(time.RFC3339))
	writeLn("- Updated: " + card.Touched().UTC().Format(time.RFC3339))

	if names := tagNames(doc, card); len(names) > 0 {
		writeLn("- Tags: " + strings.Join(names, ", "))
	}
	writeLn("")

	if len(card.Sessions) == 0 {
		writeLn("_No sessions yet._")
		return buf.String(), nil
	}

	sessions := append([]model.Session(nil), card.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	writeLn("## Sessions")
	for _, sess := range sessions {
		writeLn("")
		writeLn("### " + sess.UpdatedAt.UTC().Format("2006-01-02 15:04"))
		writeLn("")
		writeLn(strings.TrimSpace(sess.Content))
	}

	return buf.String(), nil
}

// tagNames resolves the card's tag ids to names, skipping dangling ids.
func tagNames(doc *model.Document, card *model.Card) []string {
	var names []string
	for _, id := range card.Tags {
		if t, ok := doc.FindTag(id); ok {
			names = append(names, t.Name)
		}
	}
	return names
}
