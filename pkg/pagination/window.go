package pagination

// Window holds the page numbers shown on either side of the current page.
// Both slices are ascending and never contain the current page.
type Window struct {
	Lower   []int
	Greater []int
}

// Len returns the total number of adjacent page numbers.
func (w Window) Len() int {
	return len(w.Lower) + len(w.Greater)
}

// AdjacentWindow returns up to adjacent page numbers on each side of current.
//
// When one side runs into the first or last page, its unused share moves to
// the other side, so near page 1 the window shows more greater pages and near
// the last page more lower ones. When both sides run out, the window simply
// shrinks. A non-positive adjacent count yields an empty window.
func AdjacentWindow(adjacent, current, last int) (Window, error) {
	const op = "adjacent window"

	if !IsPositive(last) {
		return Window{}, newError(op, CodeLastPageNotPositive)
	}
	if !IsPositive(current) {
		return Window{}, newError(op, CodeCurrentPageNotPositive)
	}
	if current > last {
		return Window{}, newError(op, CodeCurrentPageAfterLast)
	}

	adjacent = max(adjacent, 0)

	availableLower := current - 1
	availableGreater := last - current

	lower := min(adjacent, availableLower)
	greater := min(adjacent, availableGreater)

	leftoverLower := adjacent - lower
	leftoverGreater := adjacent - greater

	// Only one side hit a boundary: hand its leftover to the other side.
	if (leftoverLower > 0) != (leftoverGreater > 0) {
		if leftoverLower > 0 {
			greater = min(greater+leftoverLower, availableGreater)
		} else {
			lower = min(lower+leftoverGreater, availableLower)
		}
	}

	w := Window{
		Lower:   make([]int, 0, lower),
		Greater: make([]int, 0, greater),
	}
	for i := range lower {
		w.Lower = append(w.Lower, current-lower+i)
	}
	for i := range greater {
		w.Greater = append(w.Greater, current+i+1)
	}

	return w, nil
}
