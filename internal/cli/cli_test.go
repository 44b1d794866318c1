package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gather-cli/internal/model"
)

// runGather executes the root command against a throwaway data dir and
// returns whatever it printed to stdout.
func runGather(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir, "--backend", "file"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeData[T any](t *testing.T, raw string) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return envelope.Data
}

func TestProjectsLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "projects", "create", "--name", "Reading List")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := decodeData[model.Project](t, out)
	if created.Name != "Reading List" || !strings.HasPrefix(created.ID, "project-") {
		t.Fatalf("created = %+v", created)
	}

	out, err = runGather(t, dir, "projects", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	rows := decodeData[[]map[string]any](t, out)
	if len(rows) != 4 { // 3 seeded + 1 created
		t.Fatalf("%d projects, want 4", len(rows))
	}

	out, err = runGather(t, dir, "projects", "rename", created.ID, "--name", "Deep Reading")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	renamed := decodeData[model.Project](t, out)
	if renamed.Name != "Deep Reading" || renamed.ID != created.ID {
		t.Fatalf("renamed = %+v", renamed)
	}

	if _, err := runGather(t, dir, "projects", "rename", "project-nope", "--name", "x"); err == nil {
		t.Fatal("renaming an unknown project succeeded")
	}
}

func TestTagsEnsureIsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "tags", "ensure", "ai")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	tag := decodeData[model.Tag](t, out)
	if tag.ID != "tag-ai" || tag.Name != "AI" {
		t.Fatalf("ensure(ai) = %+v, want the seeded AI tag", tag)
	}

	out, err = runGather(t, dir, "tags", "ensure", "Kubernetes")
	if err != nil {
		t.Fatalf("ensure new: %v", err)
	}
	created := decodeData[model.Tag](t, out)
	if created.Name != "Kubernetes" || created.Color == "" {
		t.Fatalf("created = %+v", created)
	}

	out, err = runGather(t, dir, "tags", "ensure", "KUBERNETES")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	again := decodeData[model.Tag](t, out)
	if again.ID != created.ID {
		t.Fatalf("repeated ensure diverged: %s vs %s", again.ID, created.ID)
	}
}

func TestCardsLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "cards", "create",
		"--title", "Go scheduler internals",
		"--link", "https://example.com/go-sched",
		"--project", "project-research",
		"--tag", "Go", "--tag", "Runtime")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := decodeData[model.Card](t, out)
	if created.Title != "Go scheduler internals" || len(created.Tags) != 2 {
		t.Fatalf("created = %+v", created)
	}

	// The new card was touched most recently, so it lists first.
	out, err = runGather(t, dir, "cards", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	cards := decodeData[[]model.Card](t, out)
	if len(cards) != 5 || cards[0].ID != created.ID {
		t.Fatalf("list = %v", len(cards))
	}

	out, err = runGather(t, dir, "cards", "list", "--search", "SCHEDULER")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := decodeData[[]model.Card](t, out); len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("search hit %d cards", len(got))
	}

	out, err = runGather(t, dir, "cards", "show", created.ID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := decodeData[model.Card](t, out); got.ID != created.ID {
		t.Fatalf("show = %+v", got)
	}

	out, err = runGather(t, dir, "cards", "edit", created.ID, "--title", "Go scheduler, annotated")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	edited := decodeData[model.Card](t, out)
	if edited.Title != "Go scheduler, annotated" || len(edited.Tags) != 2 {
		t.Fatalf("edited = %+v", edited)
	}

	if _, err := runGather(t, dir, "cards", "show", "card-nope"); err == nil {
		t.Fatal("showing an unknown card succeeded")
	}
}

func TestCardsCreateWithAnalyze(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "cards", "create",
		"--link", "https://dribbble.com/shots/777", "--analyze")
	if err != nil {
		t.Fatalf("create --analyze: %v", err)
	}
	created := decodeData[model.Card](t, out)
	if created.Title != "Visual inspiration: dark mode cards" {
		t.Fatalf("title = %q", created.Title)
	}
	if created.ProjectID != "project-design" {
		t.Fatalf("projectId = %q", created.ProjectID)
	}
	if len(created.Tags) != 2 {
		t.Fatalf("tags = %v", created.Tags)
	}

	// Unrecognized link without a manual title: the fallback path leaves
	// the title empty and creation fails validation.
	if _, err := runGather(t, dir, "cards", "create",
		"--link", "https://example.com/nothing-known", "--analyze"); err == nil {
		t.Fatal("create with no match and no title succeeded")
	}
}

func TestSessionsLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "sessions", "add", "card-gpt4",
		"--content", "New reading notes.")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	added := decodeData[model.Session](t, out)
	if added.Content != "New reading notes." || !strings.HasPrefix(added.ID, "session-") {
		t.Fatalf("added = %+v", added)
	}

	out, err = runGather(t, dir, "sessions", "list", "card-gpt4")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sessions := decodeData[[]model.Session](t, out)
	if len(sessions) != 2 || sessions[0].ID != added.ID {
		t.Fatalf("list = %+v", sessions)
	}

	out, err = runGather(t, dir, "sessions", "edit", "card-gpt4", added.ID,
		"--content", "Revised notes.")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := decodeData[model.Session](t, out); got.Content != "Revised notes." {
		t.Fatalf("edited = %+v", got)
	}
}

func TestCardsExport(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, err := runGather(t, dir, "cards", "export", "card-gpt4")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "# GPT-4 technical report highlights") {
		t.Fatalf("markdown export:\n%s", out)
	}

	out, err = runGather(t, dir, "cards", "export", "card-gpt4", "--html")
	if err != nil {
		t.Fatalf("export --html: %v", err)
	}
	if !strings.Contains(out, "<h1>GPT-4 technical report highlights</h1>") {
		t.Fatalf("html export:\n%s", out)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, err := runGather(t, dir, "projects", "create", "--name", "Scratch"); err != nil {
		t.Fatalf("create: %v", err)
	}
	out, err := runGather(t, dir, "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	counts := decodeData[map[string]int](t, out)
	if counts["projects"] != 3 || counts["tags"] != 6 || counts["cards"] != 4 {
		t.Fatalf("counts = %v", counts)
	}

	out, err = runGather(t, dir, "projects", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows := decodeData[[]map[string]any](t, out); len(rows) != 3 {
		t.Fatalf("%d projects after reset, want 3", len(rows))
	}
}

func TestEditsPersistAcrossInvocations(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, err := runGather(t, dir, "cards", "edit", "card-gpt4", "--title", "Persisted title"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	out, err := runGather(t, dir, "cards", "show", "card-gpt4")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := decodeData[model.Card](t, out); got.Title != "Persisted title" {
		t.Fatalf("title = %q after reload", got.Title)
	}
}
