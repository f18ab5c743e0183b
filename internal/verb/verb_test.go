package verb

import (
	"path/filepath"
	"testing"
)

func TestResolve_Exact(t *testing.T) {
	table := NewTable()
	v, ok := table.Resolve("quit")
	if !ok {
		t.Fatal("quit should resolve")
	}
	if v.Kind != KindInternal || v.Internal != Quit {
		t.Errorf("resolved %+v, want the quit builtin", v)
	}
}

func TestResolve_Fuzzy(t *testing.T) {
	table := NewTable()
	tests := []struct {
		typed string
		want  Internal
	}{
		{"q", Quit},
		{"bk", Back},
		{"par", Parent},
		{"hid", ToggleHidden},
		{"git", ToggleGitignore},
		{"cp", CopyPath},
	}
	for _, tt := range tests {
		v, ok := table.Resolve(tt.typed)
		if !ok {
			t.Errorf("%q did not resolve", tt.typed)
			continue
		}
		if v.Internal != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.typed, v.Name, tt.want)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	table := NewTable()
	if _, ok := table.Resolve("zzzxyzzy"); ok {
		t.Error("nonsense invocation should not resolve")
	}
	if _, ok := table.Resolve(""); ok {
		t.Error("empty invocation should not resolve")
	}
}

func TestResolve_ConfigShadowsBuiltin(t *testing.T) {
	table := NewTable()
	table.AddExternal("open in editor", "open", "vi {file}")

	v, ok := table.Resolve("open")
	if !ok {
		t.Fatal("open should resolve")
	}
	if v.Kind != KindExternal {
		t.Error("a config verb with the same invocation should shadow the builtin")
	}
}

func TestResolveExecution(t *testing.T) {
	sep := string(filepath.Separator)
	file := filepath.Join(sep+"home", "u", "proj", "main.go")
	dir := filepath.Join(sep+"home", "u", "proj")

	v := Verb{Kind: KindExternal, Execution: "vi {file}"}
	if got := v.ResolveExecution(file, false); got != "vi "+file {
		t.Errorf("got %q", got)
	}

	v = Verb{Kind: KindExternal, Execution: "ls {directory}"}
	if got := v.ResolveExecution(file, false); got != "ls "+dir {
		t.Errorf("{directory} for a file should be its parent, got %q", got)
	}
	if got := v.ResolveExecution(dir, true); got != "ls "+dir {
		t.Errorf("{directory} for a directory should be itself, got %q", got)
	}

	v = Verb{Kind: KindExternal, Execution: "du {parent}"}
	if got := v.ResolveExecution(dir, true); got != "du "+filepath.Dir(dir) {
		t.Errorf("{parent} should always be the parent, got %q", got)
	}
}
