package mutate

import (
	"strings"
	"time"

	"gather-cli/internal/model"
)

// AddSession prepends a session to the card and refreshes the card's
// updatedAt: touching a note counts as touching the card.
func AddSession(doc *model.Document, cardID, sessionID, content string, now time.Time) (*model.Session, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, EmptyFieldError{Field: "session content"}
	}
	card, ok := doc.FindCard(cardID)
	if !ok {
		return nil, NotFoundError{Kind: "card", ID: cardID}
	}
	sess := model.Session{ID: sessionID, Content: content, UpdatedAt: now.UTC()}
	card.Sessions = append([]model.Session{sess}, card.Sessions...)
	card.UpdatedAt = now.UTC()
	return &card.Sessions[0], nil
}

// EditSession replaces a session's content and refreshes both the session
// and the owning card.
func EditSession(doc *model.Document, cardID, sessionID, content string, now time.Time) (*model.Session, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, EmptyFieldError{Field: "session content"}
	}
	card, ok := doc.FindCard(cardID)
	if !ok {
		return nil, NotFoundError{Kind: "card", ID: cardID}
	}
	sess, ok := card.FindSession(sessionID)
	if !ok {
		return nil, NotFoundError{Kind: "session", ID: sessionID}
	}
	sess.Content = content
	sess.UpdatedAt = now.UTC()
	card.UpdatedAt = now.UTC()
	return sess, nil
}
