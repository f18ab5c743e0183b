package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/arbor/internal/config"
	"github.com/marcus/arbor/internal/verb"
)

func writeTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for name, content := range entries {
		full := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newModel(t *testing.T, root string) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Watch.Enabled = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(root, cfg, logger)
	m.width, m.height = 100, 30
	m.ready = true
	return m
}

func displayed(m Model) []string {
	out := make([]string, len(m.result.Order))
	for i, id := range m.result.Order {
		out[i] = m.tree.At(id).Name
	}
	return out
}

func has(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func runInternal(t *testing.T, m Model, in verb.Internal) Model {
	t.Helper()
	res, _ := m.runVerb(verb.Verb{Kind: verb.KindInternal, Internal: in})
	return res.(Model)
}

func TestNew_BuildsInitialView(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/main.go": "", "readme.md": ""})

	m := newModel(t, root)
	got := displayed(m)
	if len(got) == 0 {
		t.Fatal("initial build is empty")
	}
	if got[0] != filepath.Base(root) {
		t.Errorf("first line = %q, want the root", got[0])
	}
	if !has(got, "src") || !has(got, "readme.md") {
		t.Errorf("entries missing: %v", got)
	}
}

func TestFocusAndBack(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"sub/inner.txt": "", "top.txt": ""})

	m := newModel(t, root)
	m.setPattern("inner")
	m.rebuild()

	m.focus(filepath.Join(root, "sub"))
	if m.root != filepath.Join(root, "sub") {
		t.Fatalf("root = %q after focus", m.root)
	}
	if !m.pattern.IsEmpty() {
		t.Error("focus should clear the pattern")
	}
	if m.history.Len() != 1 {
		t.Fatalf("history depth = %d, want 1", m.history.Len())
	}

	if _, ok := m.back(); !ok {
		t.Fatal("back should pop the pushed state")
	}
	if m.root != root {
		t.Errorf("root = %q after back, want %q", m.root, root)
	}
	if m.pattern.Raw() != "inner" {
		t.Errorf("pattern = %q after back, want restored", m.pattern.Raw())
	}
}

func TestBack_EmptyHistory(t *testing.T) {
	m := newModel(t, t.TempDir())
	if _, ok := m.back(); ok {
		t.Error("back on empty history should report false")
	}
}

func TestToggleHiddenVerb(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".secret": "", "plain.txt": ""})

	m := newModel(t, root)
	if has(displayed(m), ".secret") {
		t.Fatal("hidden file displayed before toggle")
	}

	m = runInternal(t, m, verb.ToggleHidden)
	if !has(displayed(m), ".secret") {
		t.Error("hidden file missing after toggle")
	}

	m = runInternal(t, m, verb.ToggleHidden)
	if has(displayed(m), ".secret") {
		t.Error("second toggle should restore the original view")
	}
}

func TestToggleFilesVerb(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"dir/": "", "file.txt": ""})

	m := newModel(t, root)
	m = runInternal(t, m, verb.ToggleFiles)
	got := displayed(m)
	if has(got, "file.txt") {
		t.Errorf("files displayed in dirs-only mode: %v", got)
	}
	if !has(got, "dir") {
		t.Errorf("directory missing: %v", got)
	}
}

func TestPrintPathVerb(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": ""})

	m := newModel(t, root)
	m.setPattern("a.txt")
	m.rebuild()

	m = runInternal(t, m, verb.PrintPath)
	if m.ExitPath() != filepath.Join(root, "a.txt") {
		t.Errorf("ExitPath = %q", m.ExitPath())
	}
}

func TestParentVerb(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"sub/x.txt": ""})

	m := newModel(t, filepath.Join(root, "sub"))
	m = runInternal(t, m, verb.Parent)
	if m.root != root {
		t.Errorf("root = %q after parent, want %q", m.root, root)
	}
	if m.history.Len() != 1 {
		t.Error("parent should push the previous state")
	}
}

func TestSelectionMovement(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "", "b.txt": "", "c.txt": ""})

	m := newModel(t, root)
	m.moveSelection(2)
	if m.selIdx != 2 {
		t.Errorf("selIdx = %d, want 2", m.selIdx)
	}
	m.moveSelection(100)
	if m.selIdx != len(m.result.Order)-1 {
		t.Error("movement should clamp at the last line")
	}
	m.moveSelection(-100)
	if m.selIdx != 0 {
		t.Error("movement should clamp at the first line")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{2048, "2.0K"},
		{15 * 1024, "15K"},
		{3 * 1024 * 1024, "3.0M"},
		{5 * 1024 * 1024 * 1024, "5.0G"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.in); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPermBits(t *testing.T) {
	if got := formatPermBits(0o754); got != "rwxr-xr--" {
		t.Errorf("perm = %q, want rwxr-xr--", got)
	}
	if got := formatPermBits(0o600); got != "rw-------" {
		t.Errorf("perm = %q, want rw-------", got)
	}
}
