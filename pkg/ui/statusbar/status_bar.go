// Package statusbar renders the single-line status bar of the demo program.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/kontrol/pkg/ui/themes"
	"github.com/macropower/kontrol/pkg/version"
)

const helpText = " ? Help "

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// Renderer renders a status bar of a fixed width.
type Renderer struct {
	theme   *themes.Theme
	message string
	width   int
	style   Style
}

type Opt func(*Renderer)

// WithMessage replaces the note with a success message.
func WithMessage(message string) Opt {
	return func(r *Renderer) {
		r.style = StyleSuccess
		r.message = message
	}
}

// WithError replaces the note with an error message.
func WithError(message string) Opt {
	return func(r *Renderer) {
		r.style = StyleError
		r.message = message
	}
}

// New creates a [Renderer]. Widths below the minimum are raised to it.
func New(t *themes.Theme, width int, opts ...Opt) *Renderer {
	r := &Renderer{theme: t, width: max(width, MinWidth), style: StyleNormal}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// MinWidth is the narrowest status bar rendered.
const MinWidth = 30

// Render renders logo, note and progress across the full width.
func (r *Renderer) Render(note, progress string) string {
	logo := r.theme.LogoStyle.Render("kontrol " + version.GetVersion())
	help := r.styled(r.theme.HelpStyle).Render(helpText)
	progressNote := r.styled(r.theme.SubtleStyle).Render(" " + progress + " ")

	if r.message != "" {
		note = r.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))

	available := max(0, r.width-
		ansi.PrintableRuneWidth(logo)-
		ansi.PrintableRuneWidth(progressNote)-
		ansi.PrintableRuneWidth(help))

	note = truncate.StringWithTail(" "+note+" ", uint(available), r.theme.Ellipsis) //nolint:gosec // Uses max.

	padding := max(0, available-ansi.PrintableRuneWidth(note))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		logo,
		r.styled(r.theme.StatusBarStyle).Render(note+strings.Repeat(" ", padding)),
		progressNote,
		help,
	)
}

// styled returns base recoloured for the current style.
func (r *Renderer) styled(base lipgloss.Style) lipgloss.Style {
	switch r.style {
	case StyleError:
		return base.
			Foreground(r.theme.ErrorStyle.GetForeground()).
			Background(r.theme.ErrorStyle.GetBackground())
	case StyleSuccess:
		return base.
			Foreground(r.theme.ButtonActiveStyle.GetForeground()).
			Background(r.theme.ButtonActiveStyle.GetBackground())
	default:
		return base.Background(r.theme.StatusBarStyle.GetBackground())
	}
}
