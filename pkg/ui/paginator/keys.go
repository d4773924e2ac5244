package paginator

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/macropower/kontrol/pkg/keys"
)

// KeyBinds configures the keys of a paginator. Nil fields use the defaults.
type KeyBinds struct {
	Prev        *keys.KeyBind `json:"prev,omitempty"        jsonschema:"title=Focus Previous Button"`
	Next        *keys.KeyBind `json:"next,omitempty"        jsonschema:"title=Focus Next Button"`
	Activate    *keys.KeyBind `json:"activate,omitempty"    jsonschema:"title=Activate Button"`
	First       *keys.KeyBind `json:"first,omitempty"       jsonschema:"title=First Page"`
	Last        *keys.KeyBind `json:"last,omitempty"        jsonschema:"title=Last Page"`
	SwitchFocus *keys.KeyBind `json:"switchFocus,omitempty" jsonschema:"title=Switch to Page Size"`
}

// DefaultKeyBinds returns a fully populated [KeyBinds].
func DefaultKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Prev,
		keys.NewBind("previous button",
			keys.New("left", keys.WithAlias("←")),
			keys.New("h"),
		))
	keys.SetDefaultBind(&kb.Next,
		keys.NewBind("next button",
			keys.New("right", keys.WithAlias("→")),
			keys.New("l"),
		))
	keys.SetDefaultBind(&kb.Activate,
		keys.NewBind("go to page",
			keys.New("enter"),
			keys.New(" ", keys.WithAlias("space")),
		))
	keys.SetDefaultBind(&kb.First,
		keys.NewBind("first page",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.Last,
		keys.NewBind("last page",
			keys.New("end"),
			keys.New("G"),
		))
	keys.SetDefaultBind(&kb.SwitchFocus,
		keys.NewBind("page size",
			keys.New("tab"),
			keys.New("shift+tab", keys.Hidden()),
		))
}

func (kb *KeyBinds) Validate() error {
	return keys.ValidateBinds(kb.Prev, kb.Next, kb.Activate, kb.First, kb.Last, kb.SwitchFocus)
}

// ShortHelp implements [help.KeyMap].
func (kb *KeyBinds) ShortHelp() []key.Binding {
	return []key.Binding{
		kb.Prev.Binding(),
		kb.Next.Binding(),
		kb.Activate.Binding(),
		kb.SwitchFocus.Binding(),
	}
}

// FullHelp implements [help.KeyMap].
func (kb *KeyBinds) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{kb.Prev.Binding(), kb.Next.Binding(), kb.Activate.Binding()},
		{kb.First.Binding(), kb.Last.Binding(), kb.SwitchFocus.Binding()},
	}
}
