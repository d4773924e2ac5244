// Package keys models configurable key bindings and bridges them to
// [key.Binding] for use with bubbles/help.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ErrDuplicateKey is returned by [ValidateBinds] when a key is bound twice.
var ErrDuplicateKey = errors.New("duplicate key binding")

// Key represents a keyboard key with optional alias and visibility settings.
type Key struct {
	// Code is the key code identifier, as reported by [tea.KeyMsg.String].
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias is an alternative display name for the key.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden determines if the key should be hidden from help.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := &Key{
		Code: code,
	}
	for _, opt := range opts {
		opt(k)
	}

	return *k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind represents a key binding with its description and associated keys.
type KeyBind struct {
	// Description provides a description of what the key binding does.
	Description string `json:"description" jsonschema:"title=Description"`
	// Keys contains the list of keys that trigger this binding.
	Keys []Key `json:"keys" jsonschema:"title=Keys,minItems=1"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	keys := []string{}
	for _, k := range kb.Keys {
		if k.Hidden {
			continue
		}

		keys = append(keys, k.String())
	}

	return strings.Join(keys, "/")
}

// Match checks if the key matches any of the keys in the binding.
func (kb *KeyBind) Match(key string) bool {
	if kb == nil {
		return false
	}

	for _, k := range kb.Keys {
		if k.Code == key {
			return true
		}
	}

	return false
}

func (kb *KeyBind) AddKey(key Key) {
	if kb == nil {
		return
	}

	for _, k := range kb.Keys {
		if k.Code == key.Code {
			return
		}
	}

	kb.Keys = append(kb.Keys, key)
}

// Binding converts kb to a [key.Binding]. A binding with only hidden keys
// is disabled in help but still matches.
func (kb *KeyBind) Binding() key.Binding {
	if kb == nil {
		return key.NewBinding(key.WithDisabled())
	}

	codes := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		codes = append(codes, k.Code)
	}

	b := key.NewBinding(
		key.WithKeys(codes...),
		key.WithHelp(kb.String(), kb.Description),
	)
	if kb.String() == "" {
		b.SetHelp("", "")
	}

	return b
}

// ValidateBinds reports every key code that appears in more than one binding
// within the same group.
func ValidateBinds(kbs ...*KeyBind) error {
	var errs []error

	seen := make(map[string]string)
	for _, kb := range kbs {
		if kb == nil {
			continue
		}

		for _, k := range kb.Keys {
			if other, ok := seen[k.Code]; ok {
				errs = append(errs, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateKey, k.Code, other, kb.Description))

				continue
			}

			seen[k.Code] = kb.Description
		}
	}

	return errors.Join(errs...)
}

// SetDefaultBind fills a nil binding, or its empty fields, from defaultKb.
func SetDefaultBind(kb **KeyBind, defaultKb KeyBind) {
	if *kb == nil {
		*kb = &defaultKb

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = defaultKb.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = defaultKb.Description
	}
}
