package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/arbor/internal/compute"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ToastMsg displays a temporary message.
	ToastMsg struct {
		Message  string
		Duration time.Duration
		IsError  bool
	}

	// RefreshMsg triggers a rebuild of the tree from the filesystem.
	RefreshMsg struct{}

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}

	// WatchStartedMsg delivers the filesystem watcher once it is running.
	WatchStartedMsg struct{ Watcher *Watcher }

	// WatchEventMsg is sent when the watched subtree changed on disk.
	WatchEventMsg struct{}

	// ComputeResultMsg wraps a batch from the background computer.
	ComputeResultMsg compute.ResultMsg
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ShowToast returns a command to show a toast message.
func ShowToast(msg string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: msg, Duration: duration}
	}
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// listenCompute waits for the next batch from the background computer.
func listenCompute(c *compute.Computer) tea.Cmd {
	return func() tea.Msg {
		return ComputeResultMsg(<-c.Results())
	}
}

// listenWatch waits for the next debounced filesystem event.
func listenWatch(w *Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return WatchEventMsg{}
	}
}
