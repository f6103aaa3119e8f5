package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings, ids
	colorAccent  = lipgloss.Color("#FFD700") // Gold: warnings
	colorSuccess = lipgloss.Color("#00E676") // Green: passed
	colorDanger  = lipgloss.Color("#FF5252") // Red: failures
	colorMuted   = lipgloss.Color("#8C8C8C") // Gray: secondary text
)

// Status icons.
const (
	iconDone   = "✓"
	iconFailed = "✗"
	iconWarn   = "⚠"
	iconLane   = "◆"
	iconArrow  = "→"
)

// styles are bound to the renderer of one output so color detection follows
// the destination writer rather than the process stdout.
type styles struct {
	ok    lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
	title lipgloss.Style
	id    lipgloss.Style
	rule  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		ok:    r.NewStyle().Foreground(colorSuccess).Bold(true),
		fail:  r.NewStyle().Foreground(colorDanger).Bold(true),
		warn:  r.NewStyle().Foreground(colorAccent).Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		title: r.NewStyle().Foreground(colorPrimary).Bold(true),
		id:    r.NewStyle().Foreground(colorPrimary),
		rule: r.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorDanger),
	}
}
