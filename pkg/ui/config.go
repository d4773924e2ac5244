package ui

import (
	"errors"
	"fmt"

	"github.com/macropower/kontrol/pkg/keys"
	"github.com/macropower/kontrol/pkg/ui/dropdown"
	"github.com/macropower/kontrol/pkg/ui/paginator"
)

// Config contains TUI-specific configuration.
type Config struct {
	KeyBinds *KeyBinds `json:"keyBinds,omitempty" jsonschema:"title=Key Binds"`
	// Theme is a chroma style name, or "auto", "dark" or "light".
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
}

// DefaultConfig returns a fully populated [Config].
func DefaultConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.Theme == "" {
		c.Theme = "auto"
	}

	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// KeyBinds holds the key binds of the demo program and its controls.
type KeyBinds struct {
	Quit      *keys.KeyBind       `json:"quit,omitempty"      jsonschema:"title=Quit"`
	Help      *keys.KeyBind       `json:"help,omitempty"      jsonschema:"title=Toggle Help"`
	Focus     *keys.KeyBind       `json:"focus,omitempty"     jsonschema:"title=Switch Control"`
	Dropdown  *dropdown.KeyBinds  `json:"dropdown,omitempty"  jsonschema:"title=Dropdown Key Binds"`
	Paginator *paginator.KeyBinds `json:"paginator,omitempty" jsonschema:"title=Paginator Key Binds"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	// Always ensure that ctrl+c is bound to quit.
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Help, keys.NewBind("toggle help", keys.New("?")))
	keys.SetDefaultBind(&kb.Focus, keys.NewBind("switch control", keys.New("f")))

	if kb.Dropdown == nil {
		kb.Dropdown = &dropdown.KeyBinds{}
	}

	kb.Dropdown.EnsureDefaults()

	if kb.Paginator == nil {
		kb.Paginator = &paginator.KeyBinds{}
	}

	kb.Paginator.EnsureDefaults()
}

// Validate reports keys bound twice within the program keys and either
// control.
func (kb *KeyBinds) Validate() error {
	global := []*keys.KeyBind{kb.Quit, kb.Help, kb.Focus}

	var errs []error

	err := kb.Dropdown.Validate()
	if err != nil {
		errs = append(errs, fmt.Errorf("dropdown: %w", err))
	}

	err = kb.Paginator.Validate()
	if err != nil {
		errs = append(errs, fmt.Errorf("paginator: %w", err))
	}

	err = keys.ValidateBinds(append(global,
		kb.Dropdown.Toggle, kb.Dropdown.Up, kb.Dropdown.Down,
	)...)
	if err != nil {
		errs = append(errs, fmt.Errorf("dropdown: %w", err))
	}

	err = keys.ValidateBinds(append(global,
		kb.Paginator.Prev, kb.Paginator.Next, kb.Paginator.Activate,
		kb.Paginator.First, kb.Paginator.Last, kb.Paginator.SwitchFocus,
	)...)
	if err != nil {
		errs = append(errs, fmt.Errorf("paginator: %w", err))
	}

	return errors.Join(errs...)
}
