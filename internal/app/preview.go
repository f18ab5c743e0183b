package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/marcus/arbor/internal/styles"
)

const (
	// The preview is a glance, not a pager: only the head of the file is
	// read and highlighted.
	previewMaxBytes = 64 * 1024
	previewMaxLines = 500
)

// syncPreview reloads the preview pane for the current selection.
func (m *Model) syncPreview() {
	if !m.cfg.UI.Preview {
		return
	}
	sel := m.selection()
	if sel == nil || sel.IsDir() {
		m.previewPath = ""
		m.previewLines = nil
		m.previewBinary = false
		return
	}
	if sel.Path == m.previewPath {
		return
	}
	m.previewPath = sel.Path
	m.previewScroll = 0
	m.previewLines, m.previewBinary = loadPreview(sel.Path)
}

// loadPreview reads the head of the file and syntax-highlights it.
func loadPreview(path string) (lines []string, binary bool) {
	f, err := os.Open(path)
	if err != nil {
		return []string{"cannot read: " + err.Error()}, false
	}
	defer f.Close()

	buf := make([]byte, previewMaxBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return []string{"cannot read: " + err.Error()}, false
	}
	if n == 0 {
		return nil, false
	}
	buf = buf[:n]

	if bytes.IndexByte(buf, 0) >= 0 {
		return nil, true
	}

	content := string(buf)
	highlighted := highlight(path, content)
	lines = strings.Split(highlighted, "\n")
	if len(lines) > previewMaxLines {
		lines = lines[:previewMaxLines]
	}
	return lines, false
}

// highlight runs chroma over content; on any failure the plain text is
// returned unchanged.
func highlight(path, content string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return content
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styles.SyntaxTheme)
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return content
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	var out strings.Builder
	if err := formatter.Format(&out, style, iterator); err != nil {
		return content
	}
	return out.String()
}
