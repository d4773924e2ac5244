package keys_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/kontrol/pkg/keys"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		code     string
		opts     []keys.KeyOpt
		expected keys.Key
	}{
		"basic key": {
			code:     "ctrl+c",
			expected: keys.Key{Code: "ctrl+c"},
		},
		"key with alias": {
			code:     "left",
			opts:     []keys.KeyOpt{keys.WithAlias("←")},
			expected: keys.Key{Code: "left", Alias: "←"},
		},
		"hidden key": {
			code:     "esc",
			opts:     []keys.KeyOpt{keys.Hidden()},
			expected: keys.Key{Code: "esc", Hidden: true},
		},
		"alias and hidden": {
			code:     "right",
			opts:     []keys.KeyOpt{keys.WithAlias("→"), keys.Hidden()},
			expected: keys.Key{Code: "right", Alias: "→", Hidden: true},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, keys.New(tc.code, tc.opts...))
		})
	}
}

func TestKeyBind_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kb       keys.KeyBind
		expected string
	}{
		"single key": {
			kb:       keys.NewBind("select", keys.New("enter")),
			expected: "enter",
		},
		"aliases": {
			kb:       keys.NewBind("prev", keys.New("left", keys.WithAlias("←")), keys.New("h")),
			expected: "←/h",
		},
		"hidden keys are skipped": {
			kb:       keys.NewBind("close", keys.New("esc"), keys.New("q", keys.Hidden())),
			expected: "esc",
		},
		"all hidden": {
			kb:       keys.NewBind("quit", keys.New("ctrl+c", keys.Hidden())),
			expected: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.kb.String())
		})
	}
}

func TestKeyBind_Match(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("next", keys.New("right"), keys.New("l", keys.Hidden()))

	assert.True(t, kb.Match("right"))
	assert.True(t, kb.Match("l"), "hidden keys still match")
	assert.False(t, kb.Match("left"))

	var nilBind *keys.KeyBind
	assert.False(t, nilBind.Match("right"))
}

func TestKeyBind_AddKey(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("next", keys.New("right"))
	kb.AddKey(keys.New("l"))
	kb.AddKey(keys.New("right", keys.WithAlias("→")))

	assert.Equal(t, []keys.Key{{Code: "right"}, {Code: "l"}}, kb.Keys)

	var nilBind *keys.KeyBind
	assert.NotPanics(t, func() { nilBind.AddKey(keys.New("x")) })
}

func TestKeyBind_Binding(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("first page", keys.New("home", keys.WithAlias("⇱")), keys.New("g"))
	b := kb.Binding()

	assert.Equal(t, []string{"home", "g"}, b.Keys())
	assert.Equal(t, "⇱/g", b.Help().Key)
	assert.Equal(t, "first page", b.Help().Desc)
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, b))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyHome}, b))

	var nilBind *keys.KeyBind
	assert.False(t, nilBind.Binding().Enabled())
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	err := keys.ValidateBinds(
		&keys.KeyBind{Description: "prev", Keys: []keys.Key{{Code: "left"}}},
		&keys.KeyBind{Description: "next", Keys: []keys.Key{{Code: "right"}}},
		nil,
	)
	require.NoError(t, err)

	err = keys.ValidateBinds(
		&keys.KeyBind{Description: "prev", Keys: []keys.Key{{Code: "left"}}},
		&keys.KeyBind{Description: "first", Keys: []keys.Key{{Code: "left"}, {Code: "home"}}},
	)
	require.ErrorIs(t, err, keys.ErrDuplicateKey)
	assert.Contains(t, err.Error(), `"left" used by "prev" and "first"`)
}

func TestSetDefaultBind(t *testing.T) {
	t.Parallel()

	def := keys.NewBind("select", keys.New("enter"))

	var unset *keys.KeyBind
	keys.SetDefaultBind(&unset, def)
	require.NotNil(t, unset)
	assert.Equal(t, def, *unset)

	partial := &keys.KeyBind{Keys: []keys.Key{{Code: " "}}}
	keys.SetDefaultBind(&partial, def)
	assert.Equal(t, "select", partial.Description)
	assert.Equal(t, []keys.Key{{Code: " "}}, partial.Keys)

	empty := &keys.KeyBind{Description: "pick"}
	keys.SetDefaultBind(&empty, def)
	assert.Equal(t, "pick", empty.Description)
	assert.Equal(t, def.Keys, empty.Keys)
}
