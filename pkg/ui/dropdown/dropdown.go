// Package dropdown implements a generic single-select dropdown for Bubble
// Tea.
//
// The selected value follows the controlled/uncontrolled rules of
// [selection.Engine]: when the host passes an Option that is one of the
// AvailableOptions, the dropdown only displays it and reports selections
// through OnSelect and [SelectedMsg]; otherwise the dropdown keeps its own
// value.
//
// Rendered options carry the encoded form of their value. Choosing an option
// sends a [SelectMsg] with that key, which the model decodes back into the
// exact value before selecting it, so composite and nil values are preserved.
package dropdown

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/kontrol/pkg/selection"
	"github.com/macropower/kontrol/pkg/ui/themes"
)

// ErrNotOption is returned by [Model.KeyOf] for values that are not options.
var ErrNotOption = errors.New("value is not an available option")

// Config is the host-supplied configuration of a dropdown.
type Config[T any] struct {
	// InitialOption seeds the value. It is never tracked afterwards.
	InitialOption *T
	// Option controls the value while it is one of AvailableOptions.
	Option *T
	// OnSelect is called with the requested and previous value on every
	// selection, controlled or not.
	OnSelect selection.SelectFunc[T]
	// Equal compares values. Defaults to [selection.DeepEqual].
	Equal selection.EqualFunc[T]
	// Codec encodes values into option keys. Defaults to [selection.JSONCodec].
	Codec selection.Codec[T]
	// AvailableOptions must not be empty.
	AvailableOptions []selection.Option[T]
}

// OptionProps is passed to a [RenderOptionFunc] for every option.
type OptionProps struct {
	DisplayValue string
	// Key is the encoded value carried by [SelectMsg].
	Key      string
	Selected bool
	Cursor   bool
}

// RenderOptionFunc renders one option of the open dropdown.
type RenderOptionFunc func(OptionProps) string

// SelectMsg asks the dropdown with the given ID to select the option whose
// encoded value is Key.
type SelectMsg struct {
	ID  string
	Key string
}

// SelectedMsg is emitted after every selection.
type SelectedMsg[T any] struct {
	ID       string
	Next     T
	Previous T
}

// Opt configures a [Model].
type Opt[T any] func(m *Model[T])

// WithID sets the ID used to route [SelectMsg] and tag [SelectedMsg].
func WithID[T any](id string) Opt[T] {
	return func(m *Model[T]) {
		m.id = id
	}
}

func WithTheme[T any](t *themes.Theme) Opt[T] {
	return func(m *Model[T]) {
		m.theme = t
	}
}

func WithKeyBinds[T any](kb *KeyBinds) Opt[T] {
	return func(m *Model[T]) {
		m.kb = kb
	}
}

// WithRenderOption replaces the default option renderer.
func WithRenderOption[T any](fn RenderOptionFunc) Opt[T] {
	return func(m *Model[T]) {
		m.renderOption = fn
	}
}

// WithWidth truncates the closed label to width cells. Zero disables it.
func WithWidth[T any](width int) Opt[T] {
	return func(m *Model[T]) {
		m.width = width
	}
}

func WithLogger[T any](l *slog.Logger) Opt[T] {
	return func(m *Model[T]) {
		m.log = l
	}
}

// Model is a Bubble Tea dropdown over values of type T.
type Model[T any] struct {
	engine       *selection.Engine[T]
	options      *selection.OptionSet[T]
	theme        *themes.Theme
	kb           *KeyBinds
	codec        selection.Codec[T]
	log          *slog.Logger
	renderOption RenderOptionFunc
	id           string
	query        string
	keys         []string
	labels       []string
	cursor       int
	width        int
	open         bool
	focused      bool
}

// New creates a dropdown from cfg.
func New[T any](cfg Config[T], opts ...Opt[T]) (Model[T], error) {
	m := Model[T]{
		theme: themes.Default,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.kb == nil {
		m.kb = DefaultKeyBinds()
	} else {
		m.kb.EnsureDefaults()
	}

	err := m.kb.Validate()
	if err != nil {
		return m, fmt.Errorf("dropdown key binds: %w", err)
	}

	err = m.configure(cfg)
	if err != nil {
		return m, err
	}

	engine, err := selection.New(selection.Config[T]{
		Initial:     cfg.InitialOption,
		Controlling: cfg.Option,
		Domain:      m.options,
		OnSelect:    cfg.OnSelect,
	})
	if err != nil {
		return m, fmt.Errorf("dropdown: %w", err)
	}

	m.engine = engine
	m.logIgnored(cfg.Option)

	return m, nil
}

// SetConfig reconciles a new host configuration. The initial option is
// ignored.
func (m Model[T]) SetConfig(cfg Config[T]) (Model[T], error) {
	err := m.configure(cfg)
	if err != nil {
		return m, err
	}

	err = m.engine.Update(cfg.Option, m.options)
	if err != nil {
		return m, fmt.Errorf("dropdown: %w", err)
	}

	m.engine.SetOnSelect(cfg.OnSelect)
	m.cursor = min(m.cursor, m.options.Len()-1)
	m.logIgnored(cfg.Option)

	return m, nil
}

// configure builds the option set and encoded keys for cfg.
func (m *Model[T]) configure(cfg Config[T]) error {
	options, err := selection.NewOptionSet(cfg.AvailableOptions, cfg.Equal)
	if err != nil {
		return fmt.Errorf("dropdown: %w", err)
	}

	codec := cfg.Codec
	if codec == nil {
		codec = selection.JSONCodec[T]{}
	}

	encoded, err := selection.Keys(codec, cfg.AvailableOptions)
	if err != nil {
		return fmt.Errorf("dropdown: %w", err)
	}

	labels := make([]string, 0, len(cfg.AvailableOptions))
	for _, o := range cfg.AvailableOptions {
		labels = append(labels, o.DisplayValue)
	}

	m.options = options
	m.codec = codec
	m.keys = encoded
	m.labels = labels

	return nil
}

func (m Model[T]) logIgnored(option *T) {
	if option != nil && !m.options.Contains(*option) {
		m.log.Debug("controlling option is not available, ignoring",
			slog.String("dropdown", m.id),
		)
	}
}

func (m Model[T]) Init() tea.Cmd {
	return nil
}

func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case SelectMsg:
		if msg.ID != m.id {
			return m, nil
		}

		return m.handleSelect(msg.Key)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}

		if m.open {
			return m.handleOpenKey(msg)
		}

		return m.handleClosedKey(msg)
	}

	return m, nil
}

func (m Model[T]) handleSelect(k string) (Model[T], tea.Cmd) {
	next, err := m.codec.Decode(k)
	if err != nil {
		m.log.Warn("ignoring selection",
			slog.String("dropdown", m.id),
			slog.String("key", k),
			slog.Any("error", err),
		)

		return m, nil
	}

	prev := m.engine.Select(next)
	if i := m.options.Index(m.engine.Value()); i >= 0 {
		m.cursor = i
	}

	id := m.id

	return m, func() tea.Msg {
		return SelectedMsg[T]{ID: id, Next: next, Previous: prev}
	}
}

func (m Model[T]) handleClosedKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	k := msg.String()

	switch {
	case m.kb.Toggle.Match(k):
		m.open = true
		m.query = ""
		m.cursor = max(m.options.Index(m.engine.Value()), 0)

	case m.kb.Up.Match(k):
		return m, m.choose(m.step(-1))

	case m.kb.Down.Match(k):
		return m, m.choose(m.step(1))
	}

	return m, nil
}

func (m Model[T]) handleOpenKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	k := msg.String()

	switch {
	case m.kb.Close.Match(k):
		m.open = false
		m.query = ""

	case m.kb.Select.Match(k):
		m.open = false
		m.query = ""

		return m, m.choose(m.cursor)

	case m.kb.Up.Match(k):
		m.cursor = max(m.cursor-1, 0)

	case m.kb.Down.Match(k):
		m.cursor = min(m.cursor+1, m.options.Len()-1)

	case m.kb.Home.Match(k):
		m.cursor = 0

	case m.kb.End.Match(k):
		m.cursor = m.options.Len() - 1

	case m.kb.Erase.Match(k):
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
			m.search()
		}

	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.query += string(msg.Runes)
		m.search()
	}

	return m, nil
}

// step returns the option index delta away from the current value, clamped.
func (m Model[T]) step(delta int) int {
	i := m.options.Index(m.engine.Value())
	if i < 0 {
		return 0
	}

	return min(max(i+delta, 0), m.options.Len()-1)
}

// choose returns a command sending the [SelectMsg] for option i.
func (m Model[T]) choose(i int) tea.Cmd {
	msg := SelectMsg{ID: m.id, Key: m.keys[i]}

	return func() tea.Msg {
		return msg
	}
}

// search moves the cursor to the best fuzzy match of the query.
func (m *Model[T]) search() {
	if m.query == "" {
		return
	}

	matches := fuzzy.Find(m.query, m.labels)
	if len(matches) > 0 {
		m.cursor = matches[0].Index
	}
}

func (m Model[T]) View() string {
	label := m.theme.DropdownStyle.Render(m.label())
	if m.focused {
		label = m.theme.ButtonFocusedStyle.Render(m.label())
	}

	if !m.open {
		return label
	}

	current := m.options.Index(m.engine.Value())
	rows := make([]string, 0, len(m.labels)+1)
	for i, l := range m.labels {
		rows = append(rows, m.render(OptionProps{
			DisplayValue: l,
			Key:          m.keys[i],
			Selected:     i == current,
			Cursor:       i == m.cursor,
		}))
	}

	if m.query != "" {
		rows = append(rows, m.theme.SubtleStyle.Render("/"+m.query))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		label,
		m.theme.DropdownOpenStyle.Render(strings.Join(rows, "\n")),
	)
}

func (m Model[T]) render(p OptionProps) string {
	if m.renderOption != nil {
		return m.renderOption(p)
	}

	prefix := "  "
	if p.Cursor {
		prefix = m.theme.CursorStyle.Render("› ")
	}

	if p.Selected {
		return prefix + m.theme.OptionSelectedStyle.UnsetPaddingLeft().Render(p.DisplayValue)
	}

	return prefix + m.theme.OptionStyle.UnsetPaddingLeft().Render(p.DisplayValue)
}

// label returns the closed label: the display value of the current value,
// or its encoded form when it is not one of the options.
func (m Model[T]) label() string {
	text := ""
	if i := m.options.Index(m.engine.Value()); i >= 0 {
		text = m.labels[i]
	} else if k, err := m.codec.Encode(m.engine.Value()); err == nil {
		text = k
	}

	text += " ▾"
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), m.theme.Ellipsis) //nolint:gosec // Width is positive.
	}

	return text
}

// Value returns the current value.
func (m Model[T]) Value() T {
	return m.engine.Value()
}

// DisplayValue returns the display value of the current value, or "".
func (m Model[T]) DisplayValue() string {
	if i := m.options.Index(m.engine.Value()); i >= 0 {
		return m.labels[i]
	}

	return ""
}

// Mode reports whether the value is host controlled.
func (m Model[T]) Mode() selection.Mode {
	return m.engine.Mode()
}

// Options returns the available options.
func (m Model[T]) Options() []selection.Option[T] {
	return m.options.Options()
}

// Keys returns the encoded key of every option, in order.
func (m Model[T]) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m Model[T]) ID() string {
	return m.id
}

func (m Model[T]) IsOpen() bool {
	return m.open
}

// Query returns the type-to-search query of the open dropdown.
func (m Model[T]) Query() string {
	return m.query
}

// Cursor returns the highlighted option index.
func (m Model[T]) Cursor() int {
	return m.cursor
}

func (m Model[T]) Focused() bool {
	return m.focused
}

func (m Model[T]) Focus() Model[T] {
	m.focused = true

	return m
}

// Blur removes focus and closes the dropdown.
func (m Model[T]) Blur() Model[T] {
	m.focused = false
	m.open = false
	m.query = ""

	return m
}

func (m Model[T]) SetWidth(width int) Model[T] {
	m.width = width

	return m
}

// KeyBinds returns the active key binds.
func (m Model[T]) KeyBinds() *KeyBinds {
	return m.kb
}

// ShortHelp returns the bindings that apply in the current state.
func (m Model[T]) ShortHelp() []key.Binding {
	if m.open {
		return []key.Binding{m.kb.Select.Binding(), m.kb.Close.Binding(), m.kb.Up.Binding(), m.kb.Down.Binding()}
	}

	return m.kb.ShortHelp()
}

// KeyOf returns the encoded key of v, which must be one of the options.
func (m Model[T]) KeyOf(v T) (string, error) {
	i := m.options.Index(v)
	if i < 0 {
		return "", ErrNotOption
	}

	return m.keys[i], nil
}
