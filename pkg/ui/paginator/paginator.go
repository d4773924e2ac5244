// Package paginator implements a Bubble Tea pagination control on top of
// [pagination.Paginator].
//
// The control renders one button per [pagination.Descriptor] and, when there
// is more than one page size option, a page size control placed on either
// side of the buttons. Every requested page number and page size is emitted
// as a [PageNumberSelectedMsg] or [PageSizeSelectedMsg], including the
// corrections made when the page number falls beyond the last page.
package paginator

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/kontrol/pkg/pagination"
	"github.com/macropower/kontrol/pkg/selection"
	"github.com/macropower/kontrol/pkg/ui/dropdown"
	"github.com/macropower/kontrol/pkg/ui/themes"
)

// DefaultID is used when no ID is given.
const DefaultID = "paginator"

// DefaultLabels are shown for named buttons without a configured label.
var DefaultLabels = map[pagination.ButtonID]string{
	pagination.First: "«",
	pagination.Prev:  "‹",
	pagination.Next:  "›",
	pagination.Last:  "»",
}

// ButtonProps is passed to a [RenderButtonFunc] for every button.
type ButtonProps struct {
	ID       pagination.ButtonID
	Label    string
	Target   int
	Active   bool
	Disabled bool
	Focused  bool
}

// RenderButtonFunc renders one button.
type RenderButtonFunc func(ButtonProps) string

// PageSizeControlProps is passed to a [RenderPageSizeControlFunc].
type PageSizeControlProps struct {
	// OnSelect returns a command requesting page size n. Its message must be
	// passed back to [Model.Update].
	OnSelect     func(n int) tea.Cmd
	Options      []int
	CurrentValue int
	Focused      bool
}

// RenderPageSizeControlFunc renders the page size control. It is only called
// when there is more than one page size option.
type RenderPageSizeControlFunc func(PageSizeControlProps) string

// PageNumberSelectedMsg reports a requested page number.
type PageNumberSelectedMsg struct {
	ID         string
	PageNumber int
}

// PageSizeSelectedMsg reports a requested page size.
type PageSizeSelectedMsg struct {
	ID       string
	PageSize int
}

// Opt configures a [Model].
type Opt func(m *Model)

// WithID sets the ID of emitted messages. The page size dropdown uses the
// ID with a "/page-size" suffix.
func WithID(id string) Opt {
	return func(m *Model) {
		m.id = id
	}
}

func WithTheme(t *themes.Theme) Opt {
	return func(m *Model) {
		m.theme = t
	}
}

func WithKeyBinds(kb *KeyBinds) Opt {
	return func(m *Model) {
		m.kb = kb
	}
}

// WithDropdownKeyBinds sets the key binds of the page size dropdown.
func WithDropdownKeyBinds(kb *dropdown.KeyBinds) Opt {
	return func(m *Model) {
		m.dropdownKeyBinds = kb
	}
}

// WithRenderButton replaces the default button renderer.
func WithRenderButton(fn RenderButtonFunc) Opt {
	return func(m *Model) {
		m.renderButton = fn
	}
}

// WithRenderPageSizeControl replaces the page size dropdown.
func WithRenderPageSizeControl(fn RenderPageSizeControlFunc) Opt {
	return func(m *Model) {
		m.renderPageSizeControl = fn
	}
}

// WithPageNumberFunc is called with every requested page number, in addition
// to the emitted [PageNumberSelectedMsg].
func WithPageNumberFunc(fn func(pageNumber int)) Opt {
	return func(m *Model) {
		m.events.onPageNumber = fn
	}
}

// WithPageSizeFunc is called with every requested page size, in addition to
// the emitted [PageSizeSelectedMsg].
func WithPageSizeFunc(fn func(pageSize int)) Opt {
	return func(m *Model) {
		m.events.onPageSize = fn
	}
}

func WithLogger(l *slog.Logger) Opt {
	return func(m *Model) {
		m.log = l
	}
}

// Model is the Bubble Tea pagination control.
type Model struct {
	p                     *pagination.Paginator
	events                *events
	theme                 *themes.Theme
	kb                    *KeyBinds
	dropdownKeyBinds      *dropdown.KeyBinds
	log                   *slog.Logger
	renderButton          RenderButtonFunc
	renderPageSizeControl RenderPageSizeControlFunc
	id                    string
	buttons               []pagination.Descriptor
	sizes                 dropdown.Model[int]
	focus                 int
	focused               bool
	sizeFocused           bool
}

// New creates a control from cfg. Empty ButtonIDs use
// [pagination.DefaultButtonIDs]. Corrections made while creating the control
// are emitted by [Model.Init].
func New(cfg pagination.Config, opts ...Opt) (Model, error) {
	m := Model{
		id:     DefaultID,
		theme:  themes.Default,
		log:    slog.Default(),
		events: &events{},
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.events.id = m.id

	if m.kb == nil {
		m.kb = DefaultKeyBinds()
	} else {
		m.kb.EnsureDefaults()
	}

	err := m.kb.Validate()
	if err != nil {
		return m, fmt.Errorf("paginator key binds: %w", err)
	}

	p, err := pagination.New(withDefaults(cfg),
		pagination.WithLogger(m.log),
		pagination.WithPageNumberFunc(m.events.pageNumber),
		pagination.WithPageSizeFunc(m.events.pageSize),
	)
	if err != nil {
		return m, err
	}

	m.p = p

	m.sizes, err = dropdown.New(m.sizeConfig(),
		dropdown.WithID[int](m.id+"/page-size"),
		dropdown.WithTheme[int](m.theme),
		dropdown.WithKeyBinds[int](m.dropdownKeyBinds),
		dropdown.WithLogger[int](m.log),
	)
	if err != nil {
		return m, fmt.Errorf("page size control: %w", err)
	}

	m.refresh()
	m.focus = m.activeIndex()

	return m, nil
}

func withDefaults(cfg pagination.Config) pagination.Config {
	if len(cfg.ButtonIDs) == 0 {
		cfg.ButtonIDs = pagination.DefaultButtonIDs
	}

	return cfg
}

// SetConfig reconciles a new host configuration.
func (m Model) SetConfig(cfg pagination.Config) (Model, tea.Cmd, error) {
	err := m.p.Update(withDefaults(cfg))
	if err != nil {
		return m, m.events.flush(), err
	}

	m, err = m.syncSizes()
	if err != nil {
		return m, m.events.flush(), err
	}

	m.refresh()

	if !m.p.ShowPageSizeControl() && m.sizeFocused {
		m.sizeFocused = false
		m.sizes = m.sizes.Blur()
	}

	return m, m.events.flush(), nil
}

// Init emits the notifications queued while creating the control.
func (m Model) Init() tea.Cmd {
	return m.events.flush()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dropdown.SelectedMsg[int]:
		if msg.ID != m.sizes.ID() {
			return m, nil
		}

		return m.handlePageSize(msg.Next)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}

		if m.sizeFocused {
			return m.handleSizeKey(msg)
		}

		return m.handleButtonKey(msg)
	}

	var cmd tea.Cmd

	m.sizes, cmd = m.sizes.Update(msg)

	return m, cmd
}

func (m Model) handleButtonKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := msg.String()

	switch {
	case m.kb.Prev.Match(k):
		m.focus = m.nextEnabled(-1)

	case m.kb.Next.Match(k):
		m.focus = m.nextEnabled(1)

	case m.kb.Activate.Match(k):
		if m.focus < 0 || m.focus >= len(m.buttons) {
			return m, nil
		}

		err := m.p.Click(m.buttons[m.focus])
		if err != nil {
			m.log.Warn("ignoring button", slog.Any("error", err))
		}

		m.refresh()
		m.focus = m.activeIndex()

	case m.kb.First.Match(k):
		m = m.selectPage(1)

	case m.kb.Last.Match(k):
		m = m.selectPage(m.p.LastPage())

	case m.kb.SwitchFocus.Match(k):
		if m.p.ShowPageSizeControl() {
			m.sizeFocused = true
			m.sizes = m.sizes.Focus()
		}
	}

	return m, m.events.flush()
}

func (m Model) handleSizeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.sizes.IsOpen() && m.kb.SwitchFocus.Match(msg.String()) {
		m.sizeFocused = false
		m.sizes = m.sizes.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.sizes, cmd = m.sizes.Update(msg)

	return m, cmd
}

// selectPage requests page n. Requesting the current page still notifies.
func (m Model) selectPage(n int) Model {
	err := m.p.SelectPage(n)
	if err != nil {
		m.log.Warn("ignoring page", slog.Any("error", err))
	}

	m.refresh()
	m.focus = m.activeIndex()

	return m
}

func (m Model) handlePageSize(n int) (Model, tea.Cmd) {
	err := m.p.SelectPageSize(n)
	if err != nil {
		m.log.Warn("ignoring page size", slog.Any("error", err))
	}

	m, err = m.syncSizes()
	if err != nil {
		m.log.Error("page size control", slog.Any("error", err))
	}

	m.refresh()

	return m, m.events.flush()
}

// syncSizes hands the current page size to the dropdown as its controlling
// option.
func (m Model) syncSizes() (Model, error) {
	sizes, err := m.sizes.SetConfig(m.sizeConfig())
	if err != nil {
		return m, fmt.Errorf("page size control: %w", err)
	}

	m.sizes = sizes

	return m, nil
}

func (m Model) sizeConfig() dropdown.Config[int] {
	size := m.p.PageSize()

	options := m.p.PageSizeOptions()
	available := make([]selection.Option[int], 0, len(options))
	for _, o := range options {
		available = append(available, selection.Option[int]{
			Value:        o,
			DisplayValue: strconv.Itoa(o) + " / page",
		})
	}

	return dropdown.Config[int]{
		Option:           &size,
		AvailableOptions: available,
	}
}

// refresh rebuilds the button descriptors and keeps the focus in range.
func (m *Model) refresh() {
	buttons, err := m.p.Buttons()
	if err != nil {
		m.log.Error("build buttons", slog.Any("error", err))

		return
	}

	m.buttons = buttons
	m.focus = min(max(m.focus, 0), len(buttons)-1)
}

func (m Model) activeIndex() int {
	for i, d := range m.buttons {
		if d.Active {
			return i
		}
	}

	return 0
}

// nextEnabled returns the index of the closest enabled button in direction
// dir, or the current focus when there is none.
func (m Model) nextEnabled(dir int) int {
	for i := m.focus + dir; i >= 0 && i < len(m.buttons); i += dir {
		if !m.buttons[i].Disabled {
			return i
		}
	}

	return m.focus
}

func (m Model) View() string {
	parts := make([]string, 0, len(m.buttons))
	for i, d := range m.buttons {
		label := d.Label
		if l, ok := DefaultLabels[d.ID]; ok && label == string(d.ID) {
			label = l
		}

		parts = append(parts, m.button(ButtonProps{
			ID:       d.ID,
			Label:    label,
			Target:   d.Target,
			Active:   d.Active,
			Disabled: d.Disabled,
			Focused:  m.focused && !m.sizeFocused && i == m.focus,
		}))
	}

	row := strings.Join(parts, " ")

	if !m.p.ShowPageSizeControl() {
		return row
	}

	control := m.pageSizeControl()
	if m.p.OptionsOnTheLeft() {
		return lipgloss.JoinHorizontal(lipgloss.Top, control, "  ", row)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", control)
}

func (m Model) button(props ButtonProps) string {
	if m.renderButton != nil {
		return m.renderButton(props)
	}

	style := m.theme.ButtonStyle

	switch {
	case props.Active && props.Focused:
		style = m.theme.ButtonActiveStyle.Underline(true)
	case props.Active:
		style = m.theme.ButtonActiveStyle
	case props.Focused:
		style = m.theme.ButtonFocusedStyle
	case props.Disabled:
		style = m.theme.ButtonDisabledStyle
	}

	return style.Render(props.Label)
}

func (m Model) pageSizeControl() string {
	if m.renderPageSizeControl != nil {
		id, current := m.sizes.ID(), m.p.PageSize()

		return m.renderPageSizeControl(PageSizeControlProps{
			OnSelect: func(n int) tea.Cmd {
				return func() tea.Msg {
					return dropdown.SelectedMsg[int]{ID: id, Next: n, Previous: current}
				}
			},
			Options:      m.p.PageSizeOptions(),
			CurrentValue: current,
			Focused:      m.focused && m.sizeFocused,
		})
	}

	return m.sizes.View()
}

// Paginator returns the underlying state.
func (m Model) Paginator() *pagination.Paginator {
	return m.p
}

func (m Model) ID() string {
	return m.id
}

func (m Model) PageNumber() int {
	return m.p.PageNumber()
}

func (m Model) PageSize() int {
	return m.p.PageSize()
}

// Buttons returns the current descriptors.
func (m Model) Buttons() []pagination.Descriptor {
	return append([]pagination.Descriptor(nil), m.buttons...)
}

// FocusedButton returns the index of the focused button.
func (m Model) FocusedButton() int {
	return m.focus
}

// PageSizeFocused reports whether keys go to the page size control.
func (m Model) PageSizeFocused() bool {
	return m.sizeFocused
}

// PageSizeControl returns the page size dropdown.
func (m Model) PageSizeControl() dropdown.Model[int] {
	return m.sizes
}

func (m Model) Focused() bool {
	return m.focused
}

func (m Model) Focus() Model {
	m.focused = true
	if m.sizeFocused {
		m.sizes = m.sizes.Focus()
	}

	return m
}

func (m Model) Blur() Model {
	m.focused = false
	m.sizes = m.sizes.Blur()

	return m
}

func (m Model) KeyBinds() *KeyBinds {
	return m.kb
}

// ShortHelp returns the bindings that apply to the focused part.
func (m Model) ShortHelp() []key.Binding {
	if m.sizeFocused {
		return append(m.sizes.ShortHelp(), m.kb.SwitchFocus.Binding())
	}

	return m.kb.ShortHelp()
}

// events queues notifications until the next command is returned. The queue
// is flushed as a sequence so the host sees notifications in the order they
// were made.
type events struct {
	onPageNumber func(int)
	onPageSize   func(int)
	id           string
	msgs         []tea.Msg
}

func (e *events) pageNumber(n int) {
	e.msgs = append(e.msgs, PageNumberSelectedMsg{ID: e.id, PageNumber: n})
	if e.onPageNumber != nil {
		e.onPageNumber(n)
	}
}

func (e *events) pageSize(n int) {
	e.msgs = append(e.msgs, PageSizeSelectedMsg{ID: e.id, PageSize: n})
	if e.onPageSize != nil {
		e.onPageSize(n)
	}
}

func (e *events) flush() tea.Cmd {
	if len(e.msgs) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(e.msgs))
	for _, msg := range e.msgs {
		cmds = append(cmds, func() tea.Msg { return msg })
	}

	e.msgs = nil

	return tea.Sequence(cmds...)
}
