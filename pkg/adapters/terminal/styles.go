package terminal

import "github.com/charmbracelet/lipgloss"

// Palette used by the note cards.
var (
	ColorAccent  = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#8a94a6")
	ColorBorder  = lipgloss.Color("#2a3850")
	ColorLiked   = lipgloss.Color("#e57373")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorError   = lipgloss.Color("#e53935")
)

// styles holds the renderer-bound styles for one Display.
type styles struct {
	Card    lipgloss.Style
	Message lipgloss.Style
	To      lipgloss.Style
	From    lipgloss.Style
	Meta    lipgloss.Style
	Liked   lipgloss.Style
	Empty   lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, width int) styles {
	return styles{
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(width),
		Message: r.NewStyle(),
		To:      r.NewStyle().Bold(true).Foreground(ColorAccent),
		From:    r.NewStyle().Italic(true),
		Meta:    r.NewStyle().Foreground(ColorMuted),
		Liked:   r.NewStyle().Foreground(ColorLiked).Bold(true),
		Empty:   r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
	}
}
