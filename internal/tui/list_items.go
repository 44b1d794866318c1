package tui

import (
	"gather-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type cardItem struct {
	card        model.Card
	projectName string // "" when unassigned
	tags        []model.Tag
}

func (i cardItem) FilterValue() string { return i.card.Title }

func newCardsList() list.Model {
	l := list.New([]list.Item{}, newCardDelegate(), 0, 0)
	// The dashboard renders its own header/footer and drives filtering
	// through the query package, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("card", "cards")
	// Bubble list defaults to quitting on ESC; here ESC means "clear/back".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
