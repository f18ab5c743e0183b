package app

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/arbor/internal/verb"
)

// openInEditor suspends the UI and runs the editor on path. The tree is
// refreshed when the editor returns.
func (m *Model) openInEditor(path string) tea.Cmd {
	c := exec.Command(m.editor(), path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RefreshMsg{}
	})
}

// execExternal runs an external verb's command through the shell so that
// environment variables in templates resolve. A failure surfaces as an error
// toast; navigation state is untouched either way.
func (m *Model) execExternal(v verb.Verb, selection string, isDir bool) tea.Cmd {
	line := v.ResolveExecution(selection, isDir)
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	c := exec.Command(shell, "-c", line)
	c.Dir = m.root
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RefreshMsg{}
	})
}
