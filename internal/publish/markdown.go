package publish

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"gather-cli/internal/model"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// No raw HTML passthrough: session content is user data and the
		// export may be opened in a browser.
		html.WithHardWraps(),
	),
)

const htmlPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// RenderCardHTML converts the card's Markdown page to a minimal
// self-contained HTML document.
func RenderCardHTML(doc *model.Document, cardID string) (string, error) {
	md, err := RenderCardMarkdown(doc, cardID)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	card, _ := doc.FindCard(cardID)
	title := template.HTMLEscapeString(card.Title)
	return fmt.Sprintf(htmlPage, title, b.String()), nil
}
