package transform

// Result is the outcome of rewriting one cell: either keep a (possibly new)
// value or drop the cell from its row.
//
// The zero Result keeps an empty string.
type Result struct {
	value string
	drop  bool
}

// Keep returns a Result that replaces the cell with value. A value containing
// the table separator expands into several cells.
func Keep(value string) Result {
	return Result{value: value}
}

// Drop returns a Result that removes the cell from its row.
func Drop() Result {
	return Result{drop: true}
}

// Dropped reports whether the cell is removed.
func (r Result) Dropped() bool {
	return r.drop
}

// Value returns the replacement value and true, or "" and false for a dropped cell.
func (r Result) Value() (string, bool) {
	if r.drop {
		return "", false
	}

	return r.value, true
}
