package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Item is one synthetic entry of the demo list.
type Item struct {
	Name string
	Size uint64
	ID   int
}

var itemWords = []string{
	"amber", "birch", "cedar", "delta", "ember", "fjord", "grove", "harbor",
	"iris", "juniper", "kelp", "lumen", "maple", "nimbus", "onyx", "pine",
}

// GenerateItems returns n deterministic items.
func GenerateItems(n int) []Item {
	items := make([]Item, 0, max(n, 0))
	for i := range n {
		word := itemWords[(i*7)%len(itemWords)]
		items = append(items, Item{
			ID:   i + 1,
			Name: fmt.Sprintf("%s-%04d", word, i+1),
			Size: uint64((i*7919)%104729+1) * 37, //nolint:gosec // Always positive.
		})
	}

	return items
}

// String renders the item as a list row.
func (i Item) String() string {
	return fmt.Sprintf("%6s  %-16s %8s",
		"#"+humanize.Comma(int64(i.ID)),
		i.Name,
		strings.Replace(humanize.Bytes(i.Size), " ", "", 1),
	)
}

// rangeNote describes the half-open item range [start, end) of total.
func rangeNote(start, end, total int) string {
	if end <= start {
		return "no items"
	}

	return fmt.Sprintf("%s-%s of %s",
		humanize.Comma(int64(start+1)),
		humanize.Comma(int64(end)),
		humanize.Comma(int64(total)),
	)
}
