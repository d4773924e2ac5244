package ui_test

import (
	"cmp"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/kontrol/pkg/keys"
	"github.com/macropower/kontrol/pkg/log"
	"github.com/macropower/kontrol/pkg/pagination"
	"github.com/macropower/kontrol/pkg/ui"
	"github.com/macropower/kontrol/pkg/uitest"
)

func options() ui.Options {
	return ui.Options{
		Paginator: pagination.Config{
			PageSizeOptions:     []int{10, 20},
			TotalItems:          100,
			AdjacentPageNumbers: 1,
		},
	}
}

func newModel(t *testing.T, opts ui.Options) ui.Model {
	t.Helper()

	m, err := ui.New(opts)
	require.NoError(t, err)

	return m
}

func drive(m ui.Model, codes ...string) ui.Model {
	msgs := make([]tea.Msg, 0, len(codes))
	for _, c := range codes {
		msgs = append(msgs, uitest.Key(c))
	}

	m, _ = uitest.Drive(m, msgs...)

	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())

	items := m.PageItems()
	require.Len(t, items, 10)
	assert.Equal(t, "amber-0001", items[0].Name)
	assert.True(t, m.Paginator().Focused())
	assert.False(t, m.Sort().Focused())
	assert.Equal(t, "Name (A-Z)", m.Sort().DisplayValue())
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	opts := options()
	opts.UI = &ui.Config{
		KeyBinds: &ui.KeyBinds{
			Focus: &keys.KeyBind{Description: "switch", Keys: []keys.Key{{Code: "tab"}}},
		},
	}

	_, err := ui.New(opts)
	require.ErrorIs(t, err, keys.ErrDuplicateKey)
}

func TestPaging(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())
	first := m.PageItems()

	m = drive(m, "right", "enter")

	assert.Equal(t, 2, m.Paginator().PageNumber())
	require.Len(t, m.PageItems(), 10)
	assert.NotEqual(t, first[0], m.PageItems()[0])

	m = drive(m, "end")
	assert.Equal(t, 10, m.Paginator().PageNumber())
}

func TestSortSelection(t *testing.T) {
	t.Parallel()

	all := ui.GenerateItems(100)
	last := slices.MaxFunc(all, func(a, b ui.Item) int { return cmp.Compare(a.Name, b.Name) })

	m := newModel(t, options())
	m = drive(m, "f", "down")

	assert.True(t, m.Sort().Focused())
	assert.Equal(t, "Name (Z-A)", m.Sort().DisplayValue())
	assert.Equal(t, last, m.PageItems()[0])
}

func TestReloadControlledValues(t *testing.T) {
	t.Parallel()

	all := ui.GenerateItems(100)
	largest := slices.MaxFunc(all, func(a, b ui.Item) int { return cmp.Compare(a.Size, b.Size) })

	m := newModel(t, options())

	cfg := options()
	page := 1
	cfg.Paginator.PageNumber = &page
	cfg.Sort.Option = &ui.SortOrder{Name: ui.SortBySize, Reverse: true}

	m, _ = uitest.Drive(m, ui.ConfigReloadMsg{Paginator: cfg.Paginator, Sort: cfg.Sort})

	status, isErr := m.Status()
	assert.Equal(t, "configuration reloaded", status)
	assert.False(t, isErr)
	assert.Equal(t, largest, m.PageItems()[0])

	// Controlled values only change with the configuration.
	m = drive(m, "right", "enter", "f", "down")

	assert.Equal(t, 1, m.Paginator().PageNumber())
	assert.Equal(t, "Largest first", m.Sort().DisplayValue())
}

func TestReloadInvalid(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())
	m = drive(m, "right", "enter")

	cfg := options()
	cfg.Paginator.PageSizeOptions = nil

	m, _ = uitest.Drive(m, ui.ConfigReloadMsg{Paginator: cfg.Paginator})

	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "page size options")
	assert.Equal(t, 2, m.Paginator().PageNumber())
}

func TestReloadTotalItems(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())
	m = drive(m, "end")
	require.Equal(t, 10, m.Paginator().PageNumber())

	cfg := options()
	cfg.Paginator.TotalItems = 25

	m, produced := uitest.Drive(m, ui.ConfigReloadMsg{Paginator: cfg.Paginator})

	assert.Equal(t, 3, m.Paginator().PageNumber())
	assert.Len(t, m.PageItems(), 5)
	assert.NotEmpty(t, produced, "the correction is reported")
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())
	m, _ = m.Update(ui.ConfigErrorMsg{Err: assert.AnError})

	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Equal(t, assert.AnError.Error(), status)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		codes    []string
		wantQuit bool
	}{
		"quit": {
			codes:    []string{"q"},
			wantQuit: true,
		},
		"ctrl+c": {
			codes:    []string{"ctrl+c"},
			wantQuit: true,
		},
		"open dropdown takes q": {
			codes: []string{"f", "enter", "q"},
		},
		"help": {
			codes: []string{"?"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newModel(t, options())

			var cmd tea.Cmd
			for _, c := range tc.codes {
				m, cmd = m.Update(uitest.Key(c))
			}

			quit := false
			if cmd != nil {
				_, quit = cmd().(tea.QuitMsg)
			}

			assert.Equal(t, tc.wantQuit, quit)
		})
	}
}

func TestOpenDropdownQuery(t *testing.T) {
	t.Parallel()

	m := newModel(t, options())
	m = drive(m, "f", "enter", "q")

	assert.True(t, m.Sort().IsOpen())
	assert.Equal(t, "q", m.Sort().Query())
}

func TestLogPanel(t *testing.T) {
	t.Parallel()

	buf := log.NewBuffer(log.DefaultBufferCapacity)

	opts := options()
	opts.Logs = buf
	opts.Logger = slog.New(log.CreateHandler(buf, slog.LevelInfo, log.FormatLogfmt))

	m := newModel(t, opts)
	m = drive(m, "right", "enter")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "page number selected")
	assert.Contains(t, view, "page_number=2")
	assert.Contains(t, view, "11-20 of 100")
}

func TestProgram(t *testing.T) {
	t.Parallel()

	tm := uitest.NewTestModel(t, newModel(t, options()), uitest.Standard)

	uitest.WaitForText(t, tm.Output(), "sorted by Name (A-Z)")
	uitest.SendKeys(tm, "right", "enter")
	uitest.WaitForText(t, tm.Output(), "11-20 of 100")

	view := uitest.FinalView(t, tm, 3*time.Second)
	assert.Contains(t, view, "11-20 of 100")
	assert.NotContains(t, view, "amber-0001")
}
