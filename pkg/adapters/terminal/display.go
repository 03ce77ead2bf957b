// Package terminal renders board views as styled cards on a terminal.
package terminal

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/k3a/html2text"

	"github.com/aretw0/noteboard/pkg/core"
)

const (
	// DefaultWidth is the card width in cells.
	DefaultWidth = 60

	// DefaultAnonymousLabel replaces an empty sender.
	DefaultAnonymousLabel = "Anonymous"

	dateLayout = "Jan 2, 2006"
)

const (
	msgEmpty     = "No notes yet. Be the first to leave one!"
	msgNoResults = "No notes found matching %q."
)

var markup = regexp.MustCompile(`</?[a-zA-Z][^>]*>|&(#[0-9]+|#x[0-9a-fA-F]+|[a-zA-Z]+);`)

// Option configures a Display.
type Option func(*Display)

// WithWidth sets the card width.
func WithWidth(width int) Option {
	return func(d *Display) {
		if width > 0 {
			d.width = width
		}
	}
}

// WithAnonymousLabel sets the label shown for notes without a sender.
func WithAnonymousLabel(label string) Option {
	return func(d *Display) {
		if label != "" {
			d.anonymous = label
		}
	}
}

// Display implements core.Display on an io.Writer.
type Display struct {
	mu        sync.Mutex
	w         io.Writer
	styles    styles
	width     int
	anonymous string
}

// New creates a Display writing to w. Colors are enabled only when w is a terminal.
func New(w io.Writer, opts ...Option) *Display {
	d := &Display{
		w:         w,
		width:     DefaultWidth,
		anonymous: DefaultAnonymousLabel,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.styles = newStyles(lipgloss.NewRenderer(w), d.width)
	return d
}

// Render implements core.Display.
func (d *Display) Render(v core.View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, d.Format(v))
}

// Format returns the text Render would write for v.
func (d *Display) Format(v core.View) string {
	switch v.State {
	case core.ViewError:
		return d.styles.Error.Render(v.Message)
	case core.ViewEmpty:
		return d.styles.Empty.Render(msgEmpty)
	case core.ViewNoResults:
		return d.styles.Empty.Render(fmt.Sprintf(msgNoResults, v.Term))
	}

	cards := make([]string, 0, len(v.Notes))
	for _, n := range v.Notes {
		cards = append(cards, d.card(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// card renders a single note.
func (d *Display) card(n core.NoteView) string {
	lines := []string{d.styles.Message.Render(PlainText(n.Message)), ""}
	if n.RecipientName != "" {
		lines = append(lines, d.styles.To.Render("To "+n.RecipientName))
	}
	lines = append(lines, d.styles.From.Render("— From "+d.Sender(n.Note)))

	meta := []string{"#" + n.ID}
	if !n.CreatedAt.IsZero() {
		meta = append(meta, n.CreatedAt.Format(dateLayout))
	}
	heart := "♡"
	if n.Liked {
		heart = d.styles.Liked.Render("♥")
	}
	meta = append(meta, fmt.Sprintf("%s %d", heart, n.Likes))
	lines = append(lines, d.styles.Meta.Render(strings.Join(meta, " · ")))

	return d.styles.Card.Render(strings.Join(lines, "\n"))
}

// Sender returns the display name of the note's sender.
func (d *Display) Sender(n core.Note) string {
	if s := strings.TrimSpace(n.SenderName); s != "" {
		return s
	}
	return d.anonymous
}

// PlainText flattens HTML markup and entities in a message. Text without
// markup is returned unchanged.
func PlainText(s string) string {
	if !markup.MatchString(s) {
		return s
	}
	return strings.TrimSpace(html2text.HTML2Text(s))
}

var _ core.Display = (*Display)(nil)
