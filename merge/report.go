package merge

// Skipped counts data rows left out of a merge, by reason.
type Skipped struct {
	// NoSeparator counts rows that have no separator, so no key prefix.
	NoSeparator int
	// NotNumeric counts rows whose key prefix is not a number.
	NotNumeric int
	// NaN counts rows whose key parsed as NaN, which has no order.
	NaN int
}

// Total returns the number of skipped rows.
func (s Skipped) Total() int {
	return s.NoSeparator + s.NotNumeric + s.NaN
}

// Report describes what ByIndex did with its input.
type Report struct {
	// Rows is the number of data rows read over all sources.
	Rows int
	// Skipped counts malformed rows that were left out.
	Skipped Skipped
	// Discarded counts rows dropped because their source had already
	// reached the capture limit for that key.
	Discarded int
	// Groups is the number of distinct keys.
	Groups int
	// Padded is the number of empty placeholder rows inserted.
	Padded int
	// Emitted is the number of data rows in the merged table.
	Emitted int
	// DuplicateColumns lists derived header names that occur more than once.
	DuplicateColumns []string
}
