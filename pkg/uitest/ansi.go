package uitest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// SetupColorProfile sets the color profile to TrueColor for consistent test
// output.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// Style holds the SGR attributes in effect for a [Segment]. Colors are
// "#rrggbb" for true color, or the decimal palette index.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Segment is a run of printable text sharing one [Style].
type Segment struct {
	Text  string
	Style Style
}

// StyleExpectation lists the attributes to check. Nil fields are ignored.
type StyleExpectation struct {
	Bold       *bool
	Italic     *bool
	Underline  *bool
	Foreground *string
	Background *string
}

// Segments splits output into styled segments. Non-SGR escape sequences are
// dropped.
func Segments(output string) []Segment {
	var (
		segments []Segment
		style    Style
		text     strings.Builder
		state    byte
	)

	flush := func() {
		if text.Len() > 0 {
			segments = append(segments, Segment{Text: text.String(), Style: style})
			text.Reset()
		}
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			flush()
			style = applySGR(p.Params(), style)
		case width > 0 || (len(seq) == 1 && seq[0] == '\n'):
			text.Write(seq)
		}

		input = input[n:]
		state = newState
	}

	flush()

	return segments
}

func applySGR(params ansi.Params, s Style) Style {
	if len(params) == 0 {
		return Style{}
	}

	for i := 0; i < len(params); i++ {
		switch param := params[i].Param(0); {
		case param == 0:
			s = Style{}
		case param == 1:
			s.Bold = true
		case param == 3:
			s.Italic = true
		case param == 4:
			s.Underline = true
		case param == 22:
			s.Bold = false
		case param == 23:
			s.Italic = false
		case param == 24:
			s.Underline = false
		case param == 38 || param == 48:
			color, skip := extendedColor(params[i+1:])
			if param == 38 {
				s.Foreground = color
			} else {
				s.Background = color
			}

			i += skip
		case param == 39:
			s.Foreground = ""
		case param == 49:
			s.Background = ""
		case param >= 30 && param <= 37:
			s.Foreground = fmt.Sprint(param - 30)
		case param >= 40 && param <= 47:
			s.Background = fmt.Sprint(param - 40)
		case param >= 90 && param <= 97:
			s.Foreground = fmt.Sprint(param - 90 + 8)
		case param >= 100 && param <= 107:
			s.Background = fmt.Sprint(param - 100 + 8)
		}
	}

	return s
}

// extendedColor decodes the parameters following a 38 or 48 and returns the
// color and the number of parameters consumed.
func extendedColor(params ansi.Params) (string, int) {
	if len(params) == 0 {
		return "", 0
	}

	switch params[0].Param(0) {
	case 5:
		if len(params) >= 2 {
			return fmt.Sprint(params[1].Param(0)), 2
		}
	case 2:
		if len(params) >= 4 {
			return fmt.Sprintf("#%02x%02x%02x",
				params[1].Param(0), params[2].Param(0), params[3].Param(0)), 4
		}
	}

	return "", len(params)
}

// AssertStyled asserts that output has a segment containing text whose
// style matches expected.
func AssertStyled(t *testing.T, output, text string, expected StyleExpectation) {
	t.Helper()

	for _, seg := range Segments(output) {
		if !strings.Contains(seg.Text, text) {
			continue
		}

		check(t, text, seg.Style, expected)

		return
	}

	t.Errorf("no styled segment contains %q in %q", text, ansi.Strip(output))
}

func check(t *testing.T, text string, got Style, expected StyleExpectation) {
	t.Helper()

	if expected.Bold != nil {
		assert.Equal(t, *expected.Bold, got.Bold, "%q bold", text)
	}
	if expected.Italic != nil {
		assert.Equal(t, *expected.Italic, got.Italic, "%q italic", text)
	}
	if expected.Underline != nil {
		assert.Equal(t, *expected.Underline, got.Underline, "%q underline", text)
	}
	if expected.Foreground != nil {
		assert.Equal(t, *expected.Foreground, got.Foreground, "%q foreground", text)
	}
	if expected.Background != nil {
		assert.Equal(t, *expected.Background, got.Background, "%q background", text)
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
