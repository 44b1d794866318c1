package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gather-cli/internal/analyze"
	"gather-cli/internal/model"
	"gather-cli/internal/mutate"
	"gather-cli/internal/query"
	"gather-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewDashboard view = iota
	viewDetail
)

// analyzeDoneMsg carries the sequence number of the request that produced
// it. The model discards results whose sequence is stale, so editing the
// URL mid-flight can never let an old response overwrite newer input.
type analyzeDoneMsg struct {
	seq    int
	result analyze.Result
	err    error
}

type appModel struct {
	store    *store.Store
	doc      *model.Document
	analyzer *analyze.Analyzer

	width  int
	height int

	view view

	cardsList   list.Model
	filter      query.Filter
	searchInput textinput.Model
	searching   bool

	detailCardID string
	detail       viewport.Model

	// New-card overlay state.
	creating       bool
	urlInput       textinput.Model
	titleInput     textinput.Model
	titleFocused   bool
	analyzeSeq     int
	analyzePending bool
	prefill        analyze.Result
	prefillOK      bool

	status string
}

func newAppModel(s *store.Store, doc *model.Document) appModel {
	m := appModel{
		store:    s,
		doc:      doc,
		analyzer: analyze.New(),
		view:     viewDashboard,
	}

	m.cardsList = newCardsList()

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search titles"
	m.searchInput.Prompt = "/ "

	m.urlInput = textinput.New()
	m.urlInput.Placeholder = "paste a link to analyze"
	m.urlInput.Prompt = "link: "

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "card title"
	m.titleInput.Prompt = "title: "

	m.refreshCards()
	return m
}

// Run starts the interactive dashboard.
func Run(s *store.Store) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newAppModel(s, doc), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case analyzeDoneMsg:
		return m.handleAnalyzeDone(msg)

	case tea.KeyMsg:
		if m.creating {
			return m.updateOverlay(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		switch m.view {
		case viewDetail:
			return m.updateDetail(msg)
		default:
			return m.updateDashboard(msg)
		}
	}

	var cmd tea.Cmd
	m.cardsList, cmd = m.cardsList.Update(msg)
	return m, cmd
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "p":
		m.filter.ProjectID = m.nextProjectID(m.filter.ProjectID)
		m.refreshCards()
		return m, nil
	case "t":
		m.filter.TagID = m.nextTagID(m.filter.TagID)
		m.refreshCards()
		return m, nil
	case "esc":
		if m.filter.Active() {
			m.filter = query.Filter{}
			m.searchInput.SetValue("")
			m.refreshCards()
		}
		return m, nil
	case "n":
		m.creating = true
		m.titleFocused = false
		m.prefillOK = false
		m.analyzePending = false
		m.urlInput.SetValue("")
		m.titleInput.SetValue("")
		m.urlInput.Focus()
		m.titleInput.Blur()
		m.status = ""
		return m, textinput.Blink
	case "r":
		if doc, err := m.store.Refresh(); err == nil {
			m.doc = doc
			m.refreshCards()
		}
		return m, nil
	case "enter":
		if it, ok := m.cardsList.SelectedItem().(cardItem); ok {
			m.detailCardID = it.card.ID
			m.view = viewDetail
			m.renderDetail()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.cardsList, cmd = m.cardsList.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.searchInput.SetValue("")
		}
		m.searching = false
		m.searchInput.Blur()
		m.filter.Search = m.searchInput.Value()
		m.refreshCards()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Live filtering: every keystroke narrows the list.
	m.filter.Search = m.searchInput.Value()
	m.refreshCards()
	return m, cmd
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewDashboard
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m appModel) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Leaving the overlay invalidates any in-flight lookup.
		m.analyzeSeq++
		m.analyzePending = false
		m.creating = false
		return m, nil
	case "tab":
		m.titleFocused = !m.titleFocused
		if m.titleFocused {
			m.urlInput.Blur()
			m.titleInput.Focus()
		} else {
			m.titleInput.Blur()
			m.urlInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		if !m.titleFocused {
			return m.startAnalyze()
		}
		return m.commitCard()
	}

	if m.titleFocused {
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}

	before := m.urlInput.Value()
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	if m.urlInput.Value() != before {
		// The URL changed: whatever lookup is in flight no longer
		// describes this input. Bump the sequence so its result is
		// discarded, and drop any previous prefill.
		m.analyzeSeq++
		m.analyzePending = false
		m.prefillOK = false
		m.status = ""
	}
	return m, cmd
}

func (m appModel) startAnalyze() (tea.Model, tea.Cmd) {
	url := strings.TrimSpace(m.urlInput.Value())
	if !analyze.ValidURL(url) {
		m.status = errorStyle.Render("enter a valid link first")
		return m, nil
	}
	m.analyzeSeq++
	seq := m.analyzeSeq
	m.analyzePending = true
	m.status = "analyzing link…"
	analyzer := m.analyzer
	return m, func() tea.Msg {
		res, err := analyzer.Analyze(context.Background(), url)
		return analyzeDoneMsg{seq: seq, result: res, err: err}
	}
}

func (m appModel) handleAnalyzeDone(msg analyzeDoneMsg) (tea.Model, tea.Cmd) {
	if !m.creating || msg.seq != m.analyzeSeq {
		// Stale response: the user edited the URL or closed the overlay
		// after this lookup was issued.
		return m, nil
	}
	m.analyzePending = false

	if errors.Is(msg.err, analyze.ErrNoMatch) {
		m.prefillOK = false
		m.status = errorStyle.Render("nothing recognized; enter a title manually")
		m.titleFocused = true
		m.urlInput.Blur()
		m.titleInput.Focus()
		return m, textinput.Blink
	}
	if msg.err != nil {
		m.prefillOK = false
		m.status = errorStyle.Render(msg.err.Error())
		return m, nil
	}

	m.prefill = msg.result
	m.prefillOK = true
	m.titleInput.SetValue(msg.result.Title)
	m.status = "prefilled from link; adjust the title and press enter to save"
	m.titleFocused = true
	m.urlInput.Blur()
	m.titleInput.Focus()
	return m, textinput.Blink
}

func (m appModel) commitCard() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.status = errorStyle.Render("title must not be empty")
		return m, nil
	}

	var tagIDs []string
	projectID := m.filter.ProjectID
	if m.prefillOK {
		ids, err := m.store.ResolveTagNames(m.prefill.Tags)
		if err != nil {
			m.status = errorStyle.Render(err.Error())
			return m, nil
		}
		tagIDs = ids
		if _, ok := m.doc.FindProject(m.prefill.ProjectID); ok {
			projectID = m.prefill.ProjectID
		}
	}

	id, err := store.NewID(store.KindCard)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	doc, err := m.store.Update(func(doc *model.Document) error {
		_, err := mutate.CreateCard(doc, mutate.NewCard{
			ID:        id,
			Title:     title,
			Link:      strings.TrimSpace(m.urlInput.Value()),
			ProjectID: projectID,
			TagIDs:    tagIDs,
		}, time.Now())
		return err
	})
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}

	m.doc = doc
	m.creating = false
	m.status = "saved " + id
	m.refreshCards()
	return m, nil
}

func (m *appModel) nextProjectID(cur string) string {
	if len(m.doc.Projects) == 0 {
		return ""
	}
	if cur == "" {
		return m.doc.Projects[0].ID
	}
	for i, p := range m.doc.Projects {
		if p.ID == cur {
			if i+1 < len(m.doc.Projects) {
				return m.doc.Projects[i+1].ID
			}
			return "" // wrap back to "all cards"
		}
	}
	return ""
}

func (m *appModel) nextTagID(cur string) string {
	tags := query.TagsByName(m.doc)
	if len(tags) == 0 {
		return ""
	}
	if cur == "" {
		return tags[0].ID
	}
	for i, t := range tags {
		if t.ID == cur {
			if i+1 < len(tags) {
				return tags[i+1].ID
			}
			return ""
		}
	}
	return ""
}

func (m *appModel) refreshCards() {
	curID := ""
	if it, ok := m.cardsList.SelectedItem().(cardItem); ok {
		curID = it.card.ID
	}

	cards := query.Apply(m.doc, m.filter)
	items := make([]list.Item, 0, len(cards))
	for _, c := range cards {
		it := cardItem{card: c}
		if p, ok := m.doc.FindProject(c.ProjectID); ok {
			it.projectName = p.Name
		}
		for _, tagID := range c.Tags {
			if t, ok := m.doc.FindTag(tagID); ok {
				it.tags = append(it.tags, *t)
			}
		}
		items = append(items, it)
	}
	m.cardsList.SetItems(items)
	if curID != "" {
		for i, item := range items {
			if item.(cardItem).card.ID == curID {
				m.cardsList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) renderDetail() {
	card, ok := m.doc.FindCard(m.detailCardID)
	if !ok {
		m.detail.SetContent("Card not found.")
		return
	}

	w := m.detailWidth()
	var b strings.Builder
	b.WriteString(headerStyle.Render(card.Title) + "\n")
	if card.Link != "" {
		b.WriteString(mutedStyle.Render(card.Link) + "\n")
	}

	project := "unassigned"
	if p, ok := m.doc.FindProject(card.ProjectID); ok {
		project = p.Name
	}
	b.WriteString(mutedStyle.Render(project+"  |  updated "+fmtDate(card.Touched())) + "\n")

	var pills []string
	for _, tagID := range card.Tags {
		if t, ok := m.doc.FindTag(tagID); ok {
			pills = append(pills, tagPill(t.Name, t.Color))
		}
	}
	if len(pills) > 0 {
		b.WriteString(strings.Join(pills, " ") + "\n")
	}
	b.WriteString("\n")

	if len(card.Sessions) == 0 {
		b.WriteString(mutedStyle.Render("No sessions yet."))
	} else {
		sessions := append([]model.Session(nil), card.Sessions...)
		sort.SliceStable(sessions, func(i, j int) bool {
			return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
		})
		for _, sess := range sessions {
			b.WriteString(mutedStyle.Render("updated "+sess.UpdatedAt.UTC().Format("2006-01-02 15:04")) + "\n")
			b.WriteString(renderMarkdown(sess.Content, w) + "\n\n")
		}
	}

	m.detail = viewport.New(w, m.bodyHeight())
	m.detail.SetContent(b.String())
}

const sidebarWidth = 26

func (m *appModel) resize() {
	h := m.bodyHeight()
	w := m.width
	if w < 40 {
		w = 40
	}
	listW := w - sidebarWidth - 2
	if listW < 30 {
		listW = 30
	}
	m.cardsList.SetSize(listW, h)
	m.searchInput.Width = w - 4
	m.urlInput.Width = w / 2
	m.titleInput.Width = w / 2
	if m.view == viewDetail {
		m.renderDetail()
	}
}

func (m *appModel) bodyHeight() int {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	return h
}

func (m *appModel) detailWidth() int {
	w := m.width - 4
	if w < 30 {
		w = 30
	}
	return w
}

func (m appModel) View() string {
	header := headerStyle.Render("Gather: knowledge dashboard")

	var body string
	switch {
	case m.creating:
		body = m.viewOverlay()
	case m.view == viewDetail:
		body = m.detail.View()
	default:
		body = m.viewDashboardBody()
	}

	footer := footerStyle.Render(m.footerText())
	parts := []string{header, body, footer}
	if m.status != "" {
		parts = []string{header, body, m.status, footer}
	}
	return strings.Join(parts, "\n\n")
}

func (m appModel) viewDashboardBody() string {
	var top string
	if m.searching {
		top = m.searchInput.View()
	} else if summary := m.filterSummary(); summary != "" {
		top = filterStyle.Render(summary)
	}
	right := m.cardsList.View()
	if top != "" {
		right = top + "\n" + right
	}
	sidebar := lipgloss.NewStyle().Width(sidebarWidth).PaddingRight(2).Render(m.viewSidebar())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right)
}

func (m appModel) viewSidebar() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Projects") + "\n")
	b.WriteString(sidebarLine("all cards", len(m.doc.Cards), m.filter.ProjectID == "") + "\n")
	for _, p := range m.doc.Projects {
		b.WriteString(sidebarLine(p.Name, query.CardCountByProject(m.doc, p.ID), p.ID == m.filter.ProjectID) + "\n")
	}
	b.WriteString("\n" + headerStyle.Render("Tags") + "\n")
	for _, t := range query.TagsByName(m.doc) {
		b.WriteString(sidebarLine("#"+t.Name, query.CardCountByTag(m.doc, t.ID), t.ID == m.filter.TagID) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sidebarLine(label string, count int, active bool) string {
	line := fmt.Sprintf("%s (%d)", label, count)
	line = truncateToWidth(line, sidebarWidth-2)
	if active {
		return filterStyle.Render("> " + line)
	}
	return "  " + line
}

func (m appModel) filterSummary() string {
	var parts []string
	if p, ok := m.doc.FindProject(m.filter.ProjectID); ok {
		parts = append(parts, "project: "+p.Name)
	}
	if t, ok := m.doc.FindTag(m.filter.TagID); ok {
		parts = append(parts, "tag: "+t.Name)
	}
	if s := strings.TrimSpace(m.filter.Search); s != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s))
	}
	if len(parts) == 0 {
		return ""
	}
	return "filters: " + strings.Join(parts, "  ·  ") + "  (esc clears)"
}

func (m appModel) viewOverlay() string {
	var b strings.Builder
	b.WriteString("New card\n\n")
	b.WriteString(m.urlInput.View() + "\n")
	b.WriteString(m.titleInput.View() + "\n")
	if m.analyzePending {
		b.WriteString("\n" + mutedStyle.Render("analyzing…"))
	}
	box := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(b.String())
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) footerText() string {
	switch {
	case m.creating:
		return "enter: analyze/save  tab: switch field  esc: cancel"
	case m.view == viewDetail:
		return "up/down: scroll  esc: back  q: quit"
	case m.searching:
		return "type to filter titles  enter: keep  esc: clear"
	default:
		return "enter: open  n: new card  p: project  t: tag  /: search  r: reload  esc: clear filters  q: quit"
	}
}
