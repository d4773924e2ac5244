package pagination

import (
	"slices"
	"strconv"
)

// ButtonID identifies a pagination button. It is one of the named
// identifiers below or the decimal form of a page number.
type ButtonID string

const (
	First   ButtonID = "first"
	Prev    ButtonID = "prev"
	Current ButtonID = "current"
	Next    ButtonID = "next"
	Last    ButtonID = "last"
)

// DefaultButtonIDs is the conventional left-to-right button layout.
var DefaultButtonIDs = []ButtonID{First, Prev, Current, Next, Last}

// PageID returns the identifier of a literal page number button.
func PageID(page int) ButtonID {
	return ButtonID(strconv.Itoa(page))
}

// Page returns the page number of a literal page identifier.
func (id ButtonID) Page() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}

	return n, true
}

// Named reports whether id is one of the named identifiers.
func (id ButtonID) Named() bool {
	switch id {
	case First, Prev, Current, Next, Last:
		return true
	}

	return false
}

// Validate rejects identifiers that are neither named nor a page number.
// Page numbers outside the page range are valid and describe a disabled
// button.
func (id ButtonID) Validate() error {
	if id.Named() {
		return nil
	}
	if _, ok := id.Page(); ok {
		return nil
	}

	err := newError("button identifier", CodeUnknownButtonIdentifier)
	err.Detail = strconv.Quote(string(id))

	return err
}

// Target returns the page a button navigates to.
func (id ButtonID) Target(current, last int) int {
	switch id {
	case First:
		return 1
	case Prev:
		return current - 1
	case Current:
		return current
	case Next:
		return current + 1
	case Last:
		return last
	}

	n, _ := id.Page()

	return n
}

// Descriptor is the render-agnostic state of one button.
type Descriptor struct {
	ID       ButtonID
	Label    string
	Target   int
	Active   bool
	Disabled bool
}

// ButtonsInput holds the arguments of [Buttons].
type ButtonsInput struct {
	Labels     map[ButtonID]string
	IDs        []ButtonID
	Current    int
	Last       int
	Adjacent   int
	Descending bool
}

// Buttons expands ids into descriptors. The [Current] identifier expands to
// the adjacent window, the current page and the window on the other side;
// with Descending the run reads from the greatest page to the lowest.
func Buttons(in ButtonsInput) ([]Descriptor, error) {
	w, err := AdjacentWindow(in.Adjacent, in.Current, in.Last)
	if err != nil {
		return nil, err
	}

	left, right := w.Lower, w.Greater
	if in.Descending {
		left, right = slices.Clone(w.Greater), slices.Clone(w.Lower)
		slices.Reverse(left)
		slices.Reverse(right)
	}

	out := make([]Descriptor, 0, len(in.IDs)+w.Len())
	for _, id := range in.IDs {
		err := id.Validate()
		if err != nil {
			return nil, err
		}

		if id != Current {
			out = append(out, describe(id, in.label(id, string(id)), in.Current, in.Last))

			continue
		}

		for _, page := range left {
			out = append(out, describe(PageID(page), strconv.Itoa(page), in.Current, in.Last))
		}

		out = append(out, describe(Current, in.label(Current, strconv.Itoa(in.Current)), in.Current, in.Last))

		for _, page := range right {
			out = append(out, describe(PageID(page), strconv.Itoa(page), in.Current, in.Last))
		}
	}

	return out, nil
}

func (in ButtonsInput) label(id ButtonID, fallback string) string {
	if l, ok := in.Labels[id]; ok {
		return l
	}

	return fallback
}

func describe(id ButtonID, label string, current, last int) Descriptor {
	target := id.Target(current, last)

	d := Descriptor{
		ID:     id,
		Label:  label,
		Target: target,
	}

	if id == Current {
		d.Active = true

		return d
	}

	d.Disabled = target < 1 || target > last || target == current

	return d
}
