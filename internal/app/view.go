package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/arbor/internal/styles"
	"github.com/marcus/arbor/internal/tree"
)

// View renders the whole screen: input line, tree (and preview), status.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView
	}

	var b strings.Builder
	b.WriteString(styles.InputPrompt.Render("arbor"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	treePane := m.renderTree()
	if m.cfg.UI.Preview && m.previewPath != "" {
		preview := m.renderPreview()
		treePane = lipgloss.JoinHorizontal(lipgloss.Top, treePane, preview)
	}
	b.WriteString(treePane)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// treeWidth is the column budget of the tree pane.
func (m Model) treeWidth() int {
	if m.cfg.UI.Preview && m.previewPath != "" {
		return m.width / 2
	}
	return m.width
}

func (m Model) renderTree() string {
	if len(m.result.Order) == 0 {
		lines := []string{styles.Muted.Render("no match (esc clears the pattern)")}
		return padPane(lines, m.maxRows(), m.treeWidth())
	}

	width := m.treeWidth()
	lines := make([]string, 0, len(m.result.Order))
	for i, id := range m.result.Order {
		lines = append(lines, m.renderLine(id, i == m.selIdx, width))
	}
	return padPane(lines, m.maxRows(), width)
}

func (m Model) renderLine(id tree.NodeID, selected bool, width int) string {
	n := m.tree.At(id)

	var b strings.Builder
	if m.flags.ShowPerms {
		b.WriteString(styles.Annotation.Render(formatPerm(n)))
		b.WriteString(" ")
	}
	if m.flags.ShowSizes {
		b.WriteString(styles.Annotation.Render(fmt.Sprintf("%8s", formatSize(n))))
		b.WriteString(" ")
	}
	b.WriteString(styles.Indent.Render(strings.Repeat("  ", n.Depth)))
	b.WriteString(m.renderName(n))

	line := ansi.Truncate(b.String(), width, "…")
	if selected {
		pad := width - ansi.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return styles.Selected.Render(line)
	}
	return line
}

// renderName styles the entry name by kind and underlines the characters the
// pattern matched.
func (m Model) renderName(n *tree.Node) string {
	style := styles.File
	switch {
	case n.HasError:
		style = styles.Broken
	case n.Ignored:
		style = styles.Ignored
	case n.Kind == tree.KindDir:
		style = styles.Dir
	case n.Kind == tree.KindSymlink:
		style = styles.Symlink
	}

	match, ok := m.pattern.Match(n.Name)
	if !ok || len(match.Positions) == 0 {
		return style.Render(n.Name)
	}

	var b strings.Builder
	prev := 0
	for _, r := range match.Ranges(n.Name) {
		if r.Start > prev {
			b.WriteString(style.Render(n.Name[prev:r.Start]))
		}
		b.WriteString(styles.MatchHighlight.Render(n.Name[r.Start:r.End]))
		prev = r.End
	}
	if prev < len(n.Name) {
		b.WriteString(style.Render(n.Name[prev:]))
	}
	return b.String()
}

func (m Model) renderPreview() string {
	width := m.width - m.treeWidth() - 1
	if width < 10 {
		return ""
	}
	rows := m.maxRows()

	var lines []string
	switch {
	case m.previewBinary:
		lines = []string{styles.Muted.Render("binary file")}
	case len(m.previewLines) == 0:
		lines = []string{styles.Muted.Render("empty file")}
	default:
		end := m.previewScroll + rows
		if end > len(m.previewLines) {
			end = len(m.previewLines)
		}
		start := m.previewScroll
		if start > end {
			start = end
		}
		for _, l := range m.previewLines[start:end] {
			lines = append(lines, ansi.Truncate(l, width-1, "…"))
		}
	}

	bordered := make([]string, len(lines))
	for i, l := range lines {
		bordered[i] = styles.Subtle.Render("│") + l
	}
	return padPane(bordered, rows, width)
}

func (m Model) renderStatus() string {
	if m.statusMsg != "" {
		style := styles.ToastInfo
		if m.statusIsError {
			style = styles.ToastError
		}
		return style.Render(ansi.Truncate(m.statusMsg, m.width-2, "…"))
	}

	var parts []string
	parts = append(parts, m.root)
	if f := m.flagSummary(); f != "" {
		parts = append(parts, f)
	}
	if m.result.NbIgnored > 0 {
		parts = append(parts, fmt.Sprintf("%d gitignored", m.result.NbIgnored))
	}
	parts = append(parts, "esc: back  :verb  :help")
	return styles.StatusBar.Render(runewidth.Truncate(strings.Join(parts, "  ·  "), m.width-2, "…"))
}

func (m Model) flagSummary() string {
	var flags []string
	if m.flags.ShowHidden {
		flags = append(flags, "hidden")
	}
	if m.flags.OnlyDirs {
		flags = append(flags, "dirs")
	}
	if m.flags.ShowSizes {
		flags = append(flags, "sizes")
	}
	if m.flags.ShowPerms {
		flags = append(flags, "perms")
	}
	flags = append(flags, "gitignore:"+m.flags.Gitignore.String())
	return strings.Join(flags, " ")
}

// padPane pads lines to a fixed rectangle so panes join cleanly.
func padPane(lines []string, rows, width int) string {
	out := make([]string, rows)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// formatSize renders a computed size, or a placeholder while the background
// walk has not reached the entry yet.
func formatSize(n *tree.Node) string {
	if n.Size == nil {
		return "?"
	}
	return humanSize(*n.Size)
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(size) / float64(div)
	if value < 10 {
		return fmt.Sprintf("%.1f%c", value, "KMGTPE"[exp])
	}
	return fmt.Sprintf("%.0f%c", value, "KMGTPE"[exp])
}

func formatPerm(n *tree.Node) string {
	if n.Perm == nil {
		return strings.Repeat("-", 9)
	}
	return formatPermBits(*n.Perm)
}

func formatPermBits(perm os.FileMode) string {
	var b strings.Builder
	for i, c := range "rwxrwxrwx" {
		if perm&(1<<(8-i)) != 0 {
			b.WriteRune(c)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
