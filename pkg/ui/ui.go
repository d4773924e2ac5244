// Package ui implements the kontrol demo program: a paginated list of
// synthetic items with a sort order dropdown, a log panel and a status bar.
//
// The program owns the controls; configuration reloads are applied through
// their SetConfig methods, so controlling values in the configuration file
// behave like a host that re-renders with new props.
package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/kontrol/pkg/log"
	"github.com/macropower/kontrol/pkg/pagination"
	"github.com/macropower/kontrol/pkg/ui/dropdown"
	"github.com/macropower/kontrol/pkg/ui/paginator"
	"github.com/macropower/kontrol/pkg/ui/statusbar"
	"github.com/macropower/kontrol/pkg/ui/themes"
)

const (
	sortID      = "sort"
	paginatorID = "items"
	logLines    = 5
)

// Options configures the demo program.
type Options struct {
	UI     *Config
	Logs   *log.Buffer
	Logger *slog.Logger
	Sort   SortConfig
	// Paginator is the paginator configuration. TotalItems also sets the
	// number of generated items.
	Paginator pagination.Config
}

// ConfigReloadMsg carries a reloaded configuration.
type ConfigReloadMsg struct {
	Sort      SortConfig
	Paginator pagination.Config
}

// ConfigErrorMsg reports a configuration that could not be reloaded.
type ConfigErrorMsg struct {
	Err error
}

type focus int

const (
	focusPaginator focus = iota
	focusSort
)

// Model is the demo program model.
type Model struct {
	log       *slog.Logger
	logs      *log.Buffer
	theme     *themes.Theme
	kb        *KeyBinds
	status    string
	items     []Item
	help      help.Model
	sort      dropdown.Model[SortOrder]
	pager     paginator.Model
	width     int
	height    int
	focus     focus
	statusErr bool
	showHelp  bool
}

// New creates the demo model.
func New(opts Options) (Model, error) {
	if opts.UI == nil {
		opts.UI = DefaultConfig()
	} else {
		opts.UI.EnsureDefaults()
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	err := opts.UI.KeyBinds.Validate()
	if err != nil {
		return Model{}, fmt.Errorf("validate key binds: %w", err)
	}

	m := Model{
		log:   opts.Logger,
		logs:  opts.Logs,
		theme: themes.New(opts.UI.Theme),
		kb:    opts.UI.KeyBinds,
		help:  help.New(),
		width: 80,
	}

	m.help.Styles.ShortKey = m.theme.HelpStyle
	m.help.Styles.ShortDesc = m.theme.SubtleStyle
	m.help.Styles.FullKey = m.theme.HelpStyle
	m.help.Styles.FullDesc = m.theme.SubtleStyle

	m.pager, err = paginator.New(opts.Paginator,
		paginator.WithID(paginatorID),
		paginator.WithTheme(m.theme),
		paginator.WithKeyBinds(m.kb.Paginator),
		paginator.WithDropdownKeyBinds(m.kb.Dropdown),
		paginator.WithLogger(m.log),
	)
	if err != nil {
		return Model{}, fmt.Errorf("paginator: %w", err)
	}

	opts.Sort.EnsureDefaults()

	m.sort, err = dropdown.New(sortDropdownConfig(opts.Sort),
		dropdown.WithID[SortOrder](sortID),
		dropdown.WithTheme[SortOrder](m.theme),
		dropdown.WithKeyBinds[SortOrder](m.kb.Dropdown),
		dropdown.WithLogger[SortOrder](m.log),
	)
	if err != nil {
		return Model{}, fmt.Errorf("sort: %w", err)
	}

	m.pager = m.pager.Focus()
	m.items = GenerateItems(opts.Paginator.TotalItems)
	sortItems(m.items, m.sort.Value())

	return m, nil
}

func sortDropdownConfig(c SortConfig) dropdown.Config[SortOrder] {
	return dropdown.Config[SortOrder]{
		InitialOption:    c.InitialOption,
		Option:           c.Option,
		AvailableOptions: c.Options,
	}
}

// NewProgram returns a new Tea program running the demo.
func NewProgram(opts Options, progOpts ...tea.ProgramOption) (*tea.Program, error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	m.log.Debug("starting kontrol ui")

	return tea.NewProgram(program{m}, append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)...), nil
}

// program adapts [Model] to [tea.Model].
type program struct {
	m Model
}

func (p program) Init() tea.Cmd {
	return p.m.Init()
}

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	p.m, cmd = p.m.Update(msg)

	return p, cmd
}

func (p program) View() string {
	return p.m.View()
}

// Init emits the corrections made while creating the controls.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pager.Init(), m.sort.Init())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConfigReloadMsg:
		return m.reload(msg)

	case ConfigErrorMsg:
		m.log.Error("reload configuration", slog.Any("error", msg.Err))
		m.setStatus(msg.Err.Error(), true)

		return m, nil

	case paginator.PageNumberSelectedMsg:
		m.log.Info("page number selected",
			slog.Int("page_number", msg.PageNumber),
			slog.String("mode", m.pager.Paginator().PageNumberMode().String()),
		)

		return m, nil

	case paginator.PageSizeSelectedMsg:
		m.log.Info("page size selected",
			slog.Int("page_size", msg.PageSize),
			slog.String("mode", m.pager.Paginator().PageSizeMode().String()),
		)

		return m, nil

	case dropdown.SelectedMsg[SortOrder]:
		if msg.ID != sortID {
			return m, nil
		}

		m.log.Info("sort order selected",
			slog.String("name", msg.Next.Name),
			slog.Bool("reverse", msg.Next.Reverse),
			slog.String("mode", m.sort.Mode().String()),
		)
		sortItems(m.items, m.sort.Value())

		return m, nil
	}

	return m.forward(msg)
}

// forward hands msg to both controls. Each control ignores messages
// addressed to another ID.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var pagerCmd, sortCmd tea.Cmd

	m.pager, pagerCmd = m.pager.Update(msg)
	m.sort, sortCmd = m.sort.Update(msg)

	return m, tea.Batch(pagerCmd, sortCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Open dropdowns take every key for type-to-search.
	if m.sort.IsOpen() || m.pager.PageSizeControl().IsOpen() {
		return m.forward(msg)
	}

	k := msg.String()

	switch {
	case m.kb.Quit.Match(k):
		return m, tea.Quit

	case m.kb.Help.Match(k):
		m.showHelp = !m.showHelp

		return m, nil

	case m.kb.Focus.Match(k):
		if m.focus == focusPaginator {
			m.focus = focusSort
			m.pager = m.pager.Blur()
			m.sort = m.sort.Focus()
		} else {
			m.focus = focusPaginator
			m.sort = m.sort.Blur()
			m.pager = m.pager.Focus()
		}

		return m, nil
	}

	return m.forward(msg)
}

func (m Model) reload(msg ConfigReloadMsg) (Model, tea.Cmd) {
	pager, cmd, err := m.pager.SetConfig(msg.Paginator)
	if err != nil {
		m.log.Error("apply paginator configuration", slog.Any("error", err))
		m.setStatus(err.Error(), true)

		return m, cmd
	}

	m.pager = pager

	msg.Sort.EnsureDefaults()

	sort, err := m.sort.SetConfig(sortDropdownConfig(msg.Sort))
	if err != nil {
		m.log.Error("apply sort configuration", slog.Any("error", err))
		m.setStatus(err.Error(), true)

		return m, cmd
	}

	m.sort = sort

	if len(m.items) != msg.Paginator.TotalItems {
		m.items = GenerateItems(msg.Paginator.TotalItems)
	}

	sortItems(m.items, m.sort.Value())

	m.log.Info("configuration reloaded",
		slog.Int("total_items", msg.Paginator.TotalItems),
		slog.Int("page_number", m.pager.PageNumber()),
		slog.Int("page_size", m.pager.PageSize()),
	)
	m.setStatus("configuration reloaded", false)

	return m, cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// PageItems returns the items shown on the current page.
func (m Model) PageItems() []Item {
	start, end := m.pager.Paginator().ItemRange()
	start = min(start, len(m.items))
	end = min(end, len(m.items))

	return m.items[start:end]
}

// RangeNote describes the items on the current page, e.g. "1-25 of 1,000".
func (m Model) RangeNote() string {
	start, end := m.pager.Paginator().ItemRange()

	return rangeNote(start, end, m.pager.Paginator().TotalItems())
}

func (m Model) View() string {
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.TextStyle.Render("Sort "),
			m.sort.View(),
		),
		"",
		m.listView(),
		"",
		m.pager.View(),
	}

	if m.logs != nil {
		sections = append(sections, "", m.logView())
	}

	sections = append(sections, "", m.statusView())

	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(helpKeys{m}.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(helpKeys{m}.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) listView() string {
	items := m.PageItems()
	if len(items) == 0 {
		return m.theme.SubtleStyle.Render("no items")
	}

	rows := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, m.theme.TextStyle.Render(item.String()))
	}

	return strings.Join(rows, "\n")
}

func (m Model) logView() string {
	lines := m.logs.Lines(logLines)
	for i, l := range lines {
		lines[i] = m.theme.SubtleStyle.Render(l)
	}

	return strings.Join(lines, "\n")
}

func (m Model) statusView() string {
	var opts []statusbar.Opt

	switch {
	case m.status != "" && m.statusErr:
		opts = append(opts, statusbar.WithError(m.status))
	case m.status != "":
		opts = append(opts, statusbar.WithMessage(m.status))
	}

	note := "sorted by " + m.sort.DisplayValue()

	return statusbar.New(m.theme, m.width, opts...).
		Render(note, m.RangeNote())
}

// Paginator returns the paginator control.
func (m Model) Paginator() paginator.Model {
	return m.pager
}

// Sort returns the sort dropdown.
func (m Model) Sort() dropdown.Model[SortOrder] {
	return m.sort
}

// Status returns the status message and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// helpKeys implements [help.KeyMap] for the focused control.
type helpKeys struct {
	m Model
}

func (h helpKeys) ShortHelp() []key.Binding {
	var bindings []key.Binding
	if h.m.focus == focusSort {
		bindings = h.m.sort.ShortHelp()
	} else {
		bindings = h.m.pager.ShortHelp()
	}

	return append(bindings,
		h.m.kb.Focus.Binding(),
		h.m.kb.Help.Binding(),
		h.m.kb.Quit.Binding(),
	)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	bindings := [][]key.Binding{
		{h.m.kb.Focus.Binding(), h.m.kb.Help.Binding(), h.m.kb.Quit.Binding()},
	}
	if h.m.focus == focusSort {
		return append(bindings, h.m.kb.Dropdown.FullHelp()...)
	}

	return append(bindings, h.m.kb.Paginator.FullHelp()...)
}
