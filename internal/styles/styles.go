// Package styles holds the shared lipgloss palette and styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Primary colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")

	// Background colors
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	// Toast foregrounds
	ToastErrorTextColor = lipgloss.Color("#FFFFFF")

	// Third-party theme names
	SyntaxTheme   = "monokai"
	MarkdownTheme = "dark"
)

// Tree entry styles
var (
	Dir = lipgloss.NewStyle().
		Foreground(Info).
		Bold(true)

	File = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Symlink = lipgloss.NewStyle().
		Foreground(Primary)

	Ignored = lipgloss.NewStyle().
		Foreground(TextSubtle)

	Broken = lipgloss.NewStyle().
		Foreground(Error)

	// The characters matched by the fuzzy pattern
	MatchHighlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)

	Selected = lipgloss.NewStyle().
			Background(BgTertiary).
			Bold(true)

	Indent = lipgloss.NewStyle().
		Foreground(TextSubtle)

	// Size and permission columns
	Annotation = lipgloss.NewStyle().
			Foreground(TextSecondary)
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)
)

// Status line and toast styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(BgSecondary).
			Padding(0, 1)

	InputPrompt = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ToastInfo = lipgloss.NewStyle().
			Background(BgTertiary).
			Foreground(TextPrimary).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(ToastErrorTextColor).
			Bold(true).
			Padding(0, 1)
)
