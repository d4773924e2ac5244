package dropdown

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"

	"github.com/macropower/kontrol/pkg/keys"
)

// KeyBinds configures the keys of a dropdown. Nil fields use the defaults.
type KeyBinds struct {
	Toggle *keys.KeyBind `json:"toggle,omitempty" jsonschema:"title=Toggle"`
	Up     *keys.KeyBind `json:"up,omitempty"     jsonschema:"title=Up"`
	Down   *keys.KeyBind `json:"down,omitempty"   jsonschema:"title=Down"`
	Home   *keys.KeyBind `json:"home,omitempty"   jsonschema:"title=Home"`
	End    *keys.KeyBind `json:"end,omitempty"    jsonschema:"title=End"`
	Select *keys.KeyBind `json:"select,omitempty" jsonschema:"title=Select"`
	Close  *keys.KeyBind `json:"close,omitempty"  jsonschema:"title=Close"`
	Erase  *keys.KeyBind `json:"erase,omitempty"  jsonschema:"title=Erase Search"`
}

// DefaultKeyBinds returns a fully populated [KeyBinds].
func DefaultKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Toggle,
		keys.NewBind("open options",
			keys.New("enter"),
			keys.New(" ", keys.WithAlias("space")),
		))
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("previous option",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("ctrl+p", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("next option",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("ctrl+n", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Home,
		keys.NewBind("first option",
			keys.New("home"),
		))
	keys.SetDefaultBind(&kb.End,
		keys.NewBind("last option",
			keys.New("end"),
		))
	keys.SetDefaultBind(&kb.Select,
		keys.NewBind("choose option",
			keys.New("enter"),
		))
	keys.SetDefaultBind(&kb.Close,
		keys.NewBind("close",
			keys.New("esc"),
		))
	keys.SetDefaultBind(&kb.Erase,
		keys.NewBind("erase search",
			keys.New("backspace", keys.Hidden()),
		))
}

// Validate rejects keys bound twice within the closed or open state.
// Toggle and Select share "enter" by default since they never apply at the
// same time.
func (kb *KeyBinds) Validate() error {
	return errors.Join(
		keys.ValidateBinds(kb.Toggle, kb.Up, kb.Down),
		keys.ValidateBinds(kb.Up, kb.Down, kb.Home, kb.End, kb.Select, kb.Close, kb.Erase),
	)
}

// ShortHelp implements [help.KeyMap].
func (kb *KeyBinds) ShortHelp() []key.Binding {
	return []key.Binding{kb.Toggle.Binding(), kb.Up.Binding(), kb.Down.Binding()}
}

// FullHelp implements [help.KeyMap].
func (kb *KeyBinds) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{kb.Toggle.Binding(), kb.Close.Binding()},
		{kb.Up.Binding(), kb.Down.Binding(), kb.Home.Binding(), kb.End.Binding()},
		{kb.Select.Binding()},
	}
}
