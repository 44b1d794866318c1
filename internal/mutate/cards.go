package mutate

import (
	"strings"
	"time"

	"gather-cli/internal/model"
)

type NewCard struct {
	ID        string
	Title     string
	Link      string
	ProjectID string
	TagIDs    []string
}

// CreateCard prepends a card so the newest entry surfaces first in raw
// document order. Tag ids are deduplicated, preserving first-seen order.
func CreateCard(doc *model.Document, nc NewCard, now time.Time) (*model.Card, error) {
	title := strings.TrimSpace(nc.Title)
	if title == "" {
		return nil, EmptyFieldError{Field: "card title"}
	}
	card := model.Card{
		ID:        nc.ID,
		Title:     title,
		Link:      strings.TrimSpace(nc.Link),
		ProjectID: strings.TrimSpace(nc.ProjectID),
		Tags:      dedupe(nc.TagIDs),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
		Sessions:  []model.Session{},
	}
	doc.Cards = append([]model.Card{card}, doc.Cards...)
	return &doc.Cards[0], nil
}

type CardEdit struct {
	Title  *string
	TagIDs *[]string
}

// EditCard applies a partial edit to title and/or tags, refreshing
// updatedAt. A nil field means "leave as is".
func EditCard(doc *model.Document, cardID string, edit CardEdit, now time.Time) (*model.Card, error) {
	card, ok := doc.FindCard(cardID)
	if !ok {
		return nil, NotFoundError{Kind: "card", ID: cardID}
	}
	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			return nil, EmptyFieldError{Field: "card title"}
		}
		card.Title = title
	}
	if edit.TagIDs != nil {
		card.Tags = dedupe(*edit.TagIDs)
	}
	card.UpdatedAt = now.UTC()
	return card, nil
}

func dedupe(ids []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
