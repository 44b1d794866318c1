package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type cardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
}

func newCardDelegate() cardDelegate {
	base := lipgloss.NewStyle().
		Width(0). // Set per-render.
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardEdge).
		Foreground(colorTitleFg)

	selected := base.
		BorderForeground(colorSelected)

	return cardDelegate{
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorMetaFg),
	}
}

func (d cardDelegate) Height() int  { return 5 } // 3 inner lines + border top/bottom
func (d cardDelegate) Spacing() int { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(cardItem)
	if !ok {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	frameW := card.GetHorizontalFrameSize()
	innerW := totalW - frameW
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	title := strings.TrimSpace(it.card.Title)
	if title == "" {
		title = "(untitled card)"
	}

	project := it.projectName
	if project == "" {
		project = "unassigned"
	}
	sessions := fmt.Sprintf("%d sessions", len(it.card.Sessions))
	if len(it.card.Sessions) == 1 {
		sessions = "1 session"
	}
	metaLine := project + "  |  updated " + fmtDate(it.card.Touched()) + "  |  " + sessions

	pills := make([]string, 0, len(it.tags))
	for _, t := range it.tags {
		pills = append(pills, tagPill(t.Name, t.Color))
	}
	tagsLine := strings.Join(pills, " ")
	if tagsLine == "" {
		tagsLine = mutedStyle.Render("no tags")
	}

	lines := []string{
		d.titleStyle.Render(truncateToWidth(title, innerW)),
		d.metaStyle.Render(truncateToWidth(metaLine, innerW)),
		truncateToWidth(tagsLine, innerW),
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format("2006-01-02")
}

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}
