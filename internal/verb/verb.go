// Package verb defines the actions invocable from the input line: built-in
// navigation verbs and user-configured external command templates.
package verb

import (
	"path/filepath"
	"strings"

	"github.com/marcus/arbor/internal/fuzzy"
)

// Kind distinguishes built-in verbs from external command templates.
type Kind int

const (
	KindInternal Kind = iota
	KindExternal
)

// Internal names a built-in action. The app switches exhaustively on these.
type Internal string

const (
	Back            Internal = "back"
	CopyPath        Internal = "copy_path"
	Focus           Internal = "focus"
	Help            Internal = "help"
	Open            Internal = "open"
	Parent          Internal = "parent"
	PrintPath       Internal = "print_path"
	Quit            Internal = "quit"
	ToggleFiles     Internal = "toggle_files"
	ToggleGitignore Internal = "toggle_gitignore"
	ToggleHidden    Internal = "toggle_hidden"
	TogglePerm      Internal = "toggle_perm"
	ToggleSizes     Internal = "toggle_sizes"
)

// Verb is one entry of the verb table.
type Verb struct {
	Name       string // display name
	Invocation string // the fuzzy-matchable token typed after ":"
	Kind       Kind
	Internal   Internal // set when Kind == KindInternal
	Execution  string   // template when Kind == KindExternal
}

// Table holds the resolvable verbs, built-ins first, then config entries.
type Table struct {
	verbs []Verb
}

// NewTable builds a table with every built-in verb.
func NewTable() *Table {
	t := &Table{}
	for _, in := range []Internal{
		Back, CopyPath, Focus, Help, Open, Parent, PrintPath, Quit,
		ToggleFiles, ToggleGitignore, ToggleHidden, TogglePerm, ToggleSizes,
	} {
		t.verbs = append(t.verbs, Verb{
			Name:       string(in),
			Invocation: string(in),
			Kind:       KindInternal,
			Internal:   in,
		})
	}
	return t
}

// AddExternal appends a configured external verb. Later entries shadow
// earlier ones with the same invocation.
func (t *Table) AddExternal(name, invocation, execution string) {
	t.verbs = append(t.verbs, Verb{
		Name:       name,
		Invocation: invocation,
		Kind:       KindExternal,
		Execution:  execution,
	})
}

// Verbs returns the table entries in resolution order.
func (t *Table) Verbs() []Verb { return t.verbs }

// Resolve matches the typed invocation against the table with the same
// fuzzy scoring used for tree entries. Exact invocation matches win
// outright; otherwise the best fuzzy score does, later entries beating
// earlier ones on ties so user config shadows built-ins.
func (t *Table) Resolve(invocation string) (Verb, bool) {
	if invocation == "" {
		return Verb{}, false
	}
	for i := len(t.verbs) - 1; i >= 0; i-- {
		if t.verbs[i].Invocation == invocation {
			return t.verbs[i], true
		}
	}

	p := fuzzy.Compile(invocation)
	best := -1
	bestScore := 0
	for i, v := range t.verbs {
		if m, ok := p.Match(v.Invocation); ok {
			if best == -1 || m.Score >= bestScore {
				best = i
				bestScore = m.Score
			}
		}
	}
	if best == -1 {
		return Verb{}, false
	}
	return t.verbs[best], true
}

// ResolveExecution substitutes the selection into an external verb's
// template. Supported placeholders: {file} (the selected entry's absolute
// path), {directory} (the entry itself when a directory, else its parent),
// and {parent} (always the parent directory).
func (v Verb) ResolveExecution(selection string, isDir bool) string {
	dir := selection
	if !isDir {
		dir = filepath.Dir(selection)
	}
	r := strings.NewReplacer(
		"{file}", selection,
		"{directory}", dir,
		"{parent}", filepath.Dir(selection),
	)
	return r.Replace(v.Execution)
}
