package app

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/arbor/internal/command"
	"github.com/marcus/arbor/internal/fuzzy"
	"github.com/marcus/arbor/internal/verb"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveSelection(-1)
		case tea.MouseButtonWheelDown:
			m.moveSelection(1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.rebuild()
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case ToastMsg:
		m.ShowToast(msg.Message, msg.Duration, msg.IsError)
		return m, nil

	case ErrorMsg:
		m.logger.Error("operation failed", "err", msg.Err)
		m.ShowToast("Error: "+msg.Err.Error(), m.cfg.UI.ToastDuration, true)
		return m, nil

	case RefreshMsg:
		m.resetRoot(m.root)
		return m, nil

	case WatchStartedMsg:
		if m.watcher != nil {
			m.watcher.Stop()
		}
		m.watcher = msg.Watcher
		return m, listenWatch(m.watcher)

	case WatchEventMsg:
		m.resetRoot(m.root)
		return m, listenWatch(m.watcher)

	case ComputeResultMsg:
		if msg.Gen == m.computeGen {
			for _, e := range msg.Entries {
				m.tree.SetComputed(e.Path, e.Size, e.Perm, e.Ignored)
			}
		}
		return m, listenCompute(m.computer)

	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "esc", "q", "?":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "esc":
		return m.handleBack()

	case "up", "ctrl+p":
		m.moveSelection(-1)
		return m, nil

	case "down", "ctrl+n":
		m.moveSelection(1)
		return m, nil

	case "pgup":
		m.moveSelection(-m.maxRows())
		return m, nil

	case "pgdown":
		m.moveSelection(m.maxRows())
		return m, nil

	case "tab":
		m.nextMatch()
		return m, nil

	case "enter":
		return m.handleAction(command.ActionFor(m.parts, true))

	case "backspace":
		if m.input.Value() == "" {
			return m.handleBack()
		}
	}

	// Everything else edits the input line.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	raw := m.input.Value()
	if parts := command.Parse(raw); parts != m.parts {
		patternChanged := parts.Pattern != m.parts.Pattern
		m.parts = parts
		if patternChanged {
			m.pattern = fuzzy.Compile(parts.Pattern)
			m.rebuild()
		}
	}
	return m, cmd
}

// handleBack implements the esc chain: drop the verb part, clear the
// pattern, pop the history, then quit.
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.parts.HasVerb {
		m.setPattern(m.parts.Pattern)
		return m, nil
	}
	if !m.pattern.IsEmpty() || m.input.Value() != "" {
		m.setPattern("")
		m.rebuild()
		return m, nil
	}
	if cmd, ok := m.back(); ok {
		return m, cmd
	}
	m.shutdown()
	return m, tea.Quit
}

// handleAction executes a parsed enter-key action.
func (m Model) handleAction(a command.Action) (tea.Model, tea.Cmd) {
	switch a.Kind {
	case command.KindVerb:
		v, ok := m.verbs.Resolve(a.Text)
		if !ok {
			m.ShowToast(fmt.Sprintf("no verb matches %q", a.Text), m.cfg.UI.ToastDuration, true)
			return m, nil
		}
		// Executing a verb consumes the verb part, the pattern stays.
		m.setPattern(m.parts.Pattern)
		return m.runVerb(v)

	case command.KindOpenSelection:
		sel := m.selection()
		if sel == nil {
			return m, nil
		}
		if sel.IsDir() {
			return m, m.focus(sel.Path)
		}
		return m, m.openInEditor(sel.Path)
	}
	return m, nil
}

// runVerb dispatches a resolved verb against the selection.
func (m Model) runVerb(v verb.Verb) (tea.Model, tea.Cmd) {
	sel := m.selection()

	if v.Kind == verb.KindExternal {
		if sel == nil {
			return m, nil
		}
		return m, m.execExternal(v, sel.Path, sel.IsDir())
	}

	switch v.Internal {
	case verb.Quit:
		m.shutdown()
		return m, tea.Quit

	case verb.Back:
		return m.handleBack()

	case verb.Focus:
		if sel == nil {
			return m, nil
		}
		dir := sel.Path
		if !sel.IsDir() {
			dir = parentOf(sel.Path)
		}
		return m, m.focus(dir)

	case verb.Parent:
		return m, m.focus(parentOf(m.root))

	case verb.Open:
		if sel == nil {
			return m, nil
		}
		if sel.IsDir() {
			return m, m.focus(sel.Path)
		}
		return m, m.openInEditor(sel.Path)

	case verb.CopyPath:
		if sel == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(sel.Path); err != nil {
			return m, ReportError(err)
		}
		return m, ShowToast("Copied: "+sel.Path, 2*time.Second)

	case verb.PrintPath:
		if sel == nil {
			return m, nil
		}
		m.exitPath = sel.Path
		m.shutdown()
		return m, tea.Quit

	case verb.Help:
		m.openHelp()
		return m, nil

	case verb.ToggleHidden:
		m.flags.ShowHidden = !m.flags.ShowHidden
		return m.flagsChanged(true)

	case verb.ToggleGitignore:
		m.flags.Gitignore = m.flags.Gitignore.Toggle()
		return m.flagsChanged(true)

	case verb.ToggleFiles:
		// Dirs-only is display-only: directory sizes still include files.
		m.flags.OnlyDirs = !m.flags.OnlyDirs
		return m.flagsChanged(false)

	case verb.ToggleSizes:
		m.flags.ShowSizes = !m.flags.ShowSizes
		return m.flagsChanged(false)

	case verb.TogglePerm:
		m.flags.ShowPerms = !m.flags.ShowPerms
		return m.flagsChanged(false)
	}
	return m, nil
}

// flagsChanged rebuilds the view after a flag toggle. Toggles that change
// which entries aggregate into sizes invalidate computed values and restart
// the background walk; pure display toggles keep them.
func (m Model) flagsChanged(affectsAggregation bool) (tea.Model, tea.Cmd) {
	if affectsAggregation {
		m.tree.InvalidateComputed()
		m.rebuild()
		m.startCompute(nil)
		return m, nil
	}
	m.rebuild()
	m.startCompute(m.tree.KnownSizes())
	return m, nil
}

// shutdown stops background machinery before the program exits.
func (m *Model) shutdown() {
	m.computer.Stop()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}
