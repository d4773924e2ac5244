package ui

import (
	"cmp"
	"slices"

	"github.com/macropower/kontrol/pkg/selection"
)

// Sort keys.
const (
	SortByName = "name"
	SortBySize = "size"
)

// SortOrder is the value of the sort dropdown.
type SortOrder struct {
	Name    string `json:"name"              jsonschema:"title=Name,enum=name,enum=size"`
	Reverse bool   `json:"reverse,omitempty" jsonschema:"title=Reverse"`
}

// SortConfig configures the sort dropdown.
type SortConfig struct {
	// InitialOption seeds the sort order.
	InitialOption *SortOrder `json:"initialOption,omitempty" jsonschema:"title=Initial Option"`
	// Option controls the sort order while it is one of Options.
	Option *SortOrder `json:"option,omitempty" jsonschema:"title=Option"`
	// Options lists the selectable sort orders.
	Options []selection.Option[SortOrder] `json:"options,omitempty" jsonschema:"title=Options"`
}

// DefaultSortOptions returns the default sort orders.
func DefaultSortOptions() []selection.Option[SortOrder] {
	return []selection.Option[SortOrder]{
		{Value: SortOrder{Name: SortByName}, DisplayValue: "Name (A-Z)"},
		{Value: SortOrder{Name: SortByName, Reverse: true}, DisplayValue: "Name (Z-A)"},
		{Value: SortOrder{Name: SortBySize}, DisplayValue: "Smallest first"},
		{Value: SortOrder{Name: SortBySize, Reverse: true}, DisplayValue: "Largest first"},
	}
}

func (c *SortConfig) EnsureDefaults() {
	if len(c.Options) == 0 {
		c.Options = DefaultSortOptions()
	}
}

func sortItems(items []Item, order SortOrder) {
	slices.SortStableFunc(items, func(a, b Item) int {
		var c int

		switch order.Name {
		case SortBySize:
			c = cmp.Compare(a.Size, b.Size)
		default:
			c = cmp.Compare(a.Name, b.Name)
		}

		if order.Reverse {
			return -c
		}

		return c
	})
}
