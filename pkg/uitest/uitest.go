package uitest

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// BubbleModel is a constraint for Bubble Tea model types that return their
// concrete type from Update instead of [tea.Model].
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

// modelAdapter wraps a concrete model type to satisfy [tea.Model]. It quits
// on ctrl+c so programs under test can be stopped with [SendKeys].
type modelAdapter[T BubbleModel[T]] struct {
	model T
}

func (a modelAdapter[T]) Init() tea.Cmd {
	return a.model.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a modelAdapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	m, cmd := a.model.Update(msg)

	return modelAdapter[T]{model: m}, cmd
}

func (a modelAdapter[T]) View() string {
	return a.model.View()
}

// NewTestModel creates a new test model with the given terminal size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(
		tb, modelAdapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height),
	)
}

// Key builds the [tea.KeyMsg] whose String form is code, e.g. "enter",
// "shift+tab" or "x".
func Key(code string) tea.KeyMsg {
	if code == " " || code == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}

	for kt, name := range keyNames {
		if name == code {
			return tea.KeyMsg{Type: kt}
		}
	}

	k := tea.KeyMsg{Type: tea.KeyRunes}
	if r, ok := strings.CutPrefix(code, "alt+"); ok && r != "" {
		k.Alt = true
		code = r
	}

	k.Runes = []rune(code)

	return k
}

var keyNames = map[tea.KeyType]string{
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "esc",
	tea.KeyTab:       "tab",
	tea.KeyShiftTab:  "shift+tab",
	tea.KeyBackspace: "backspace",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pgup",
	tea.KeyPgDown:    "pgdown",
	tea.KeyCtrlC:     "ctrl+c",
}

// SendKeys sends one key message per code.
func SendKeys(tm *teatest.TestModel, codes ...string) {
	for _, code := range codes {
		tm.Send(Key(code))
	}
}

// Drive feeds msgs to m one at a time, running every returned command and
// feeding its messages back in until none remain. Commands are expanded by
// [Messages]. It returns the final model and
// every message the commands produced, in order.
func Drive[T BubbleModel[T]](m T, msgs ...tea.Msg) (T, []tea.Msg) {
	var produced []tea.Msg

	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var cmd tea.Cmd

		m, cmd = m.Update(msg)

		out := Messages(cmd)
		produced = append(produced, out...)
		queue = append(queue, out...)
	}

	return m, produced
}

// Messages runs cmd and returns the messages it produces, in order. Batches
// and sequences are flattened; [tea.Quit] and nil messages are dropped.
func Messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	switch msg.(type) {
	case nil, tea.QuitMsg:
		return nil
	}

	// tea.Sequence returns an unexported []tea.Cmd type.
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return []tea.Msg{msg}
	}

	var out []tea.Msg
	for i := range v.Len() {
		c, _ := v.Index(i).Interface().(tea.Cmd)
		out = append(out, Messages(c)...)
	}

	return out
}

var cmdType = reflect.TypeFor[tea.Cmd]()

// WaitForText waits until the ANSI-stripped output contains text.
func WaitForText(tb testing.TB, r io.Reader, text string, opts ...teatest.WaitForOption) {
	tb.Helper()

	opts = append([]teatest.WaitForOption{
		teatest.WithDuration(3 * time.Second),
		teatest.WithCheckInterval(10 * time.Millisecond),
	}, opts...)

	teatest.WaitFor(tb, r, func(b []byte) bool {
		return bytes.Contains([]byte(ansi.Strip(string(b))), []byte(text))
	}, opts...)
}

// FinalView quits the program with ctrl+c and returns the ANSI-stripped
// final view.
func FinalView(tb testing.TB, tm *teatest.TestModel, timeout time.Duration) string {
	tb.Helper()

	SendKeys(tm, "ctrl+c")

	m := tm.FinalModel(tb, teatest.WithFinalTimeout(timeout))

	return ansi.Strip(m.View())
}
