package pagination

// IsPositive reports whether n is greater than zero.
func IsPositive(n int) bool {
	return n > 0
}

// IsNonNegative reports whether n is zero or greater.
func IsNonNegative(n int) bool {
	return n >= 0
}

// positive returns p when it points at a positive number, otherwise nil.
func positive(p *int) *int {
	if p == nil || !IsPositive(*p) {
		return nil
	}

	return p
}

// PageCount returns the number of pages needed to show totalItems items
// pageSize at a time.
func PageCount(totalItems, pageSize int) (int, error) {
	if !IsPositive(totalItems) {
		return 0, newError("page count", CodeTotalItemsNotPositive)
	}
	if !IsPositive(pageSize) {
		return 0, newError("page count", CodePageSizeNotPositive)
	}

	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}

	return pages, nil
}
