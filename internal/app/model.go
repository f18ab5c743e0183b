// Package app is the Bubble Tea program: it owns the navigation state, the
// input line, the tree view and the preview pane, and dispatches verbs.
package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/arbor/internal/command"
	"github.com/marcus/arbor/internal/compute"
	"github.com/marcus/arbor/internal/config"
	"github.com/marcus/arbor/internal/fuzzy"
	"github.com/marcus/arbor/internal/gitignore"
	"github.com/marcus/arbor/internal/nav"
	"github.com/marcus/arbor/internal/tree"
	"github.com/marcus/arbor/internal/verb"
)

// Model is the application state.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	// Navigation
	root    string
	flags   nav.Flags
	filter  *gitignore.Filter
	tree    *tree.Tree
	result  tree.BuildResult
	selIdx  int // index into result.Order
	history *nav.History

	// Input line
	input   textinput.Model
	pattern fuzzy.Pattern
	parts   command.Parts

	// Verbs
	verbs *verb.Table

	// Background computation
	computer   *compute.Computer
	computeGen uint64

	// Filesystem watcher
	watcher *Watcher

	// Preview pane
	previewPath   string
	previewLines  []string
	previewBinary bool
	previewScroll int

	// Help overlay
	showHelp bool
	helpView string

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// Printed on exit by the caller, set by the print_path verb.
	exitPath string

	width, height int
	ready         bool
}

// New creates the application model rooted at the given directory.
func New(root string, cfg *config.Config, logger *slog.Logger) Model {
	flags := nav.Flags{
		ShowHidden: cfg.Flags.ShowHidden,
		ShowSizes:  cfg.Flags.ShowSizes,
		ShowPerms:  cfg.Flags.ShowPerms,
		OnlyDirs:   cfg.Flags.OnlyDirs,
	}
	flags.Gitignore, _ = gitignore.ParseMode(cfg.Flags.Gitignore)

	verbs := verb.NewTable()
	for _, v := range cfg.Verbs {
		verbs.AddExternal(v.Name, v.Invocation, v.Execution)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	m := Model{
		cfg:      cfg,
		logger:   logger,
		root:     root,
		flags:    flags,
		history:  &nav.History{},
		input:    input,
		pattern:  fuzzy.Compile(""),
		verbs:    verbs,
		computer: compute.New(),
	}
	m.resetRoot(root)
	return m
}

// Init starts the clock, the watcher and the background computer.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickCmd(), listenCompute(m.computer)}
	if m.cfg.Watch.Enabled {
		cmds = append(cmds, m.startWatcher())
	}
	return tea.Batch(cmds...)
}

// ExitPath returns the path to print after the program finishes, or "".
func (m Model) ExitPath() string { return m.exitPath }

// resetRoot rebuilds the arena and the ignore filter for a new root and
// restarts the background walk. Computed sizes carry over by path.
func (m *Model) resetRoot(root string) {
	var known map[string]int64
	if m.tree != nil {
		known = m.tree.KnownSizes()
	}
	m.root = root
	// The filter always collects rules; whether they exclude entries is
	// decided per build by the gitignore mode, so toggling the mode never
	// re-lists directories.
	m.filter = gitignore.NewFilter(root, gitignore.ModeYes)
	m.tree = tree.New(root, m.filter)
	m.rebuild()
	m.startCompute(known)
}

// respectIgnore resolves the gitignore mode against the root.
func (m *Model) respectIgnore() bool {
	switch m.flags.Gitignore {
	case gitignore.ModeYes:
		return true
	case gitignore.ModeAuto:
		return gitignore.InRepository(m.root)
	}
	return false
}

// rebuild derives a fresh display order from the arena.
func (m *Model) rebuild() {
	m.result = tree.Build(m.tree, tree.BuildParams{
		Pattern:       m.pattern,
		Flags:         m.flags,
		RespectIgnore: m.respectIgnore(),
		MaxRows:       m.maxRows(),
	})
	m.selIdx = 0
	for i, id := range m.result.Order {
		if id == m.result.Selection {
			m.selIdx = i
			break
		}
	}
	m.syncPreview()
}

// maxRows is the number of tree lines that fit the current layout.
func (m *Model) maxRows() int {
	if m.cfg.UI.Height > 0 {
		return m.cfg.UI.Height
	}
	// input line, status bar and toast line are carved out of the height
	rows := m.height - 3
	if rows < 1 {
		rows = 10
	}
	return rows
}

// startCompute restarts the background size/permission walk when a display
// flag wants its results.
func (m *Model) startCompute(known map[string]int64) {
	if !m.flags.ShowSizes && !m.flags.ShowPerms {
		m.computer.Stop()
		return
	}
	m.computeGen = m.computer.Start(m.root, m.flags, m.filter, m.respectIgnore(), known)
}

// startWatcher builds the watcher off the event loop.
func (m Model) startWatcher() tea.Cmd {
	root, delay := m.root, m.cfg.Watch.Debounce
	logger := m.logger
	return func() tea.Msg {
		w, err := NewWatcher(root, delay)
		if err != nil {
			logger.Warn("watcher failed", "root", root, "err", err)
			return nil
		}
		return WatchStartedMsg{Watcher: w}
	}
}

// selection returns the selected node, or nil when nothing is displayed.
func (m *Model) selection() *tree.Node {
	if len(m.result.Order) == 0 || m.selIdx >= len(m.result.Order) {
		return nil
	}
	return m.tree.At(m.result.Order[m.selIdx])
}

// moveSelection moves the selection by delta lines, clamped.
func (m *Model) moveSelection(delta int) {
	if len(m.result.Order) == 0 {
		return
	}
	m.selIdx += delta
	if m.selIdx < 0 {
		m.selIdx = 0
	}
	if m.selIdx >= len(m.result.Order) {
		m.selIdx = len(m.result.Order) - 1
	}
	m.syncPreview()
}

// nextMatch advances the selection to the next direct pattern match,
// wrapping around.
func (m *Model) nextMatch() {
	n := len(m.result.Order)
	if n == 0 || m.pattern.IsEmpty() {
		m.moveSelection(1)
		return
	}
	for step := 1; step <= n; step++ {
		i := (m.selIdx + step) % n
		if _, ok := m.pattern.Match(m.tree.At(m.result.Order[i]).Name); ok {
			m.selIdx = i
			m.syncPreview()
			return
		}
	}
}

// snapshot captures the current navigation state for the history stack.
func (m *Model) snapshot() nav.State {
	s := nav.State{
		Root:    m.root,
		Pattern: m.pattern.Raw(),
		Flags:   m.flags,
	}
	if sel := m.selection(); sel != nil {
		s.Selection = sel.Path
	}
	return s
}

// restore re-enters a previously visited state.
func (m *Model) restore(s nav.State) {
	m.flags = s.Flags
	m.setPattern(s.Pattern)
	m.resetRoot(s.Root)
	if s.Selection != "" {
		for i, id := range m.result.Order {
			if m.tree.At(id).Path == s.Selection {
				m.selIdx = i
				break
			}
		}
	}
	m.syncPreview()
}

// focus makes dir the new root: the previous state is pushed on the history
// and the pattern is cleared.
func (m *Model) focus(dir string) tea.Cmd {
	m.history.Push(m.snapshot())
	m.setPattern("")
	m.resetRoot(dir)
	return m.restartWatcher()
}

// back pops the history, or quits at the bottom of the stack.
func (m *Model) back() (tea.Cmd, bool) {
	if s, ok := m.history.Pop(); ok {
		prev := m.root
		m.restore(s)
		if prev != m.root {
			return m.restartWatcher(), true
		}
		return nil, true
	}
	return nil, false
}

// setPattern replaces both the compiled pattern and the visible input.
func (m *Model) setPattern(raw string) {
	m.input.SetValue(raw)
	m.input.CursorEnd()
	m.parts = command.Parse(raw)
	m.pattern = fuzzy.Compile(m.parts.Pattern)
}

func (m *Model) restartWatcher() tea.Cmd {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	if !m.cfg.Watch.Enabled {
		return nil
	}
	return m.startWatcher()
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// editor picks the command used by the open verb.
func (m *Model) editor() string {
	if m.cfg.UI.Editor != "" {
		return m.cfg.UI.Editor
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vim"
}

// parentOf is the parent directory, staying put at the filesystem root.
func parentOf(dir string) string {
	parent := filepath.Dir(dir)
	if parent == dir {
		return dir
	}
	return parent
}
