package app

import (
	_ "embed"

	"github.com/charmbracelet/glamour"

	"github.com/marcus/arbor/internal/styles"
)

//go:embed help.md
var helpMarkdown string

// openHelp renders the help screen, falling back to the raw markdown when
// glamour cannot initialize.
func (m *Model) openHelp() {
	width := m.width - 4
	if width < 20 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.MarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.helpView = helpMarkdown
		m.showHelp = true
		return
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		out = helpMarkdown
	}
	m.helpView = out
	m.showHelp = true
}
