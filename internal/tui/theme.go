package tui

import "github.com/charmbracelet/lipgloss"

// Palette helpers. The dashboard must stay readable on both light and dark
// terminal backgrounds, so everything goes through AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorCardEdge lipgloss.TerminalColor = ac("250", "243")
	colorSelected lipgloss.TerminalColor = ac("232", "255")
	colorTitleFg  lipgloss.TerminalColor = ac("235", "252")
	colorMetaFg   lipgloss.TerminalColor = ac("238", "250")
	colorErrorFg  lipgloss.TerminalColor = ac("124", "203")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	filterStyle = lipgloss.NewStyle().Foreground(colorAccent)
	errorStyle  = lipgloss.NewStyle().Foreground(colorErrorFg)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// tagPill renders a tag name in its assigned color.
func tagPill(name, color string) string {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if color == "" {
		st = lipgloss.NewStyle().Foreground(colorMetaFg)
	}
	return st.Render("#" + name)
}
