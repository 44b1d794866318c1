package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	// Pin the color profile so styled output is stable regardless of the
	// terminal the tests run in.
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestTruncateToWidth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"short", 10, "short"},
		{"exact fit!", 10, "exact fit!"},
		{"a little too long", 10, "a little …"},
		{"multi\nline text", 20, "multi line text"},
		{"anything", 0, ""},
		{"anything", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncateToWidth(tt.in, tt.w); got != tt.want {
			t.Fatalf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestPadOrCutANSI(t *testing.T) {
	t.Parallel()
	if got := padOrCutANSI("ab", 5); xansi.StringWidth(got) != 5 {
		t.Fatalf("padded width = %d, want 5", xansi.StringWidth(got))
	}
	if got := padOrCutANSI("abcdefgh", 5); xansi.StringWidth(got) != 5 {
		t.Fatalf("cut width = %d, want 5", xansi.StringWidth(got))
	}
	styled := lipgloss.NewStyle().Bold(true).Render("styled text here")
	if got := padOrCutANSI(styled, 6); xansi.StringWidth(got) != 6 {
		t.Fatalf("styled cut width = %d, want 6", xansi.StringWidth(got))
	}
}

func TestTagPill(t *testing.T) {
	t.Parallel()
	got := tagPill("AI", "#58b7ff")
	if !strings.Contains(xansi.Strip(got), "#AI") {
		t.Fatalf("pill = %q, want #AI in it", got)
	}
	// Missing color falls back to the muted palette without breaking.
	got = tagPill("plain", "")
	if !strings.Contains(xansi.Strip(got), "#plain") {
		t.Fatalf("pill = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()
	out := renderMarkdown("# Heading\n\nsome body text", 40)
	plain := xansi.Strip(out)
	if !strings.Contains(plain, "Heading") || !strings.Contains(plain, "some body text") {
		t.Fatalf("rendered markdown lost content:\n%s", plain)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatal("trailing newlines not trimmed")
	}
	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("blank input rendered %q", got)
	}
}

func TestRenderMarkdownReusesRenderers(t *testing.T) {
	t.Parallel()
	renderMarkdown("hello", 33)
	renderMarkdown("world", 33)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	n := 0
	for key := range mdRenderers {
		if strings.HasSuffix(key, ":33") {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("%d renderers cached for width 33, want 1", n)
	}
}

func TestFmtDate(t *testing.T) {
	t.Parallel()
	if got := fmtDate(seedTime()); got != "2026-03-01" {
		t.Fatalf("fmtDate = %q", got)
	}
}
