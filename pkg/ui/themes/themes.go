// Package themes derives lipgloss styles for the kontrol components from
// chroma styles, so any registered chroma style can be used as a theme.
package themes

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

var (
	// ErrInvalidName is returned when registering a theme without a name.
	ErrInvalidName = errors.New("theme name must not be empty")
	// ErrRegisterStyles is returned when chroma rejects the style entries.
	ErrRegisterStyles = errors.New("register styles")
)

var Default = New("github")

// Theme holds the styles used by the dropdown, the paginator and the demo.
type Theme struct {
	ButtonStyle         lipgloss.Style
	ButtonActiveStyle   lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
	ButtonFocusedStyle  lipgloss.Style

	DropdownStyle       lipgloss.Style
	DropdownOpenStyle   lipgloss.Style
	OptionStyle         lipgloss.Style
	OptionSelectedStyle lipgloss.Style
	CursorStyle         lipgloss.Style

	ErrorStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	LogoStyle      lipgloss.Style
	StatusBarStyle lipgloss.Style
	SubtleStyle    lipgloss.Style
	TextStyle      lipgloss.Style

	ChromaStyle *chroma.Style
	Ellipsis    string
}

// New creates a [Theme] from the named chroma style. "auto" (or an empty
// name) picks a light or dark style based on the terminal background; unknown
// names use the chroma fallback style.
func New(name string) *Theme {
	style := newChromaStyle(name)

	var (
		textStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.Background))

		subtleStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.Comment))

		selectedStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.NameTag)).
				Bold(true)

		buttonStyle = textStyle.
				Padding(0, 1)

		buttonActiveStyle = buttonStyle.
					Foreground(style.bg(chroma.Background)).
					Background(style.fg(chroma.NameTag)).
					Bold(true)

		buttonDisabledStyle = buttonStyle.
					Foreground(style.fgWithFactor(chroma.Comment, 0.3))

		buttonFocusedStyle = buttonStyle.
					Background(style.bgWithFactor(chroma.Background, 0.2)).
					Underline(true)

		dropdownStyle = textStyle.
				Padding(0, 1).
				Background(style.bgWithFactor(chroma.Background, 0.1))

		dropdownOpenStyle = textStyle.
					Border(lipgloss.RoundedBorder()).
					BorderForeground(style.fg(chroma.NameTag))

		cursorStyle = lipgloss.NewStyle().
				Foreground(style.fgWithFactor(chroma.NameTag, 0.3))

		errorStyle = textStyle.
				Background(style.fg(chroma.GenericDeleted))

		helpStyle = lipgloss.NewStyle().
				Foreground(style.fgWithFactor(chroma.Background, 0.2))

		logoStyle = lipgloss.NewStyle().
				Foreground(style.bg(chroma.Background)).
				Background(style.fg(chroma.NameTag)).
				Bold(true).
				Padding(0, 1)

		statusBarStyle = lipgloss.NewStyle().
				Foreground(style.fg(chroma.Background)).
				Background(style.bgWithFactor(chroma.Background, 0.1))
	)

	return &Theme{
		ButtonStyle:         buttonStyle,
		ButtonActiveStyle:   buttonActiveStyle,
		ButtonDisabledStyle: buttonDisabledStyle,
		ButtonFocusedStyle:  buttonFocusedStyle,

		DropdownStyle:       dropdownStyle,
		DropdownOpenStyle:   dropdownOpenStyle,
		OptionStyle:         textStyle.PaddingLeft(2),
		OptionSelectedStyle: selectedStyle.PaddingLeft(2),
		CursorStyle:         cursorStyle,

		ErrorStyle:     errorStyle,
		HelpStyle:      helpStyle,
		LogoStyle:      logoStyle,
		StatusBarStyle: statusBarStyle,
		SubtleStyle:    subtleStyle,
		TextStyle:      textStyle,

		ChromaStyle: style.style,
		Ellipsis:    Ellipsis,
	}
}

// Register adds a chroma style that can then be used by name with [New].
func Register(name string, entries chroma.StyleEntries) error {
	if name == "" {
		return ErrInvalidName
	}

	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterStyles, err)
	}

	styles.Register(s)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(name string) chromaStyle {
	s := styles.Get(styleName(name))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) fg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Background.String())
}

func (cs chromaStyle) fgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Background.BrightenOrDarken(factor).String())
}

func styleName(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return autoStyleName()
	default:
		return name
	}
}

func autoStyleName() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ""
	}
	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
