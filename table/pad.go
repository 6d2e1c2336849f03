package table

// EmptyRow returns a row of width empty cells.
func EmptyRow(width int) Row {
	if width <= 0 {
		return Row{}
	}

	return make(Row, width)
}

// PadRow returns a copy of r extended with empty cells up to width.
// Rows already at least width wide are copied unchanged.
func PadRow(r Row, width int) Row {
	out := make(Row, max(len(r), width))
	copy(out, r)

	return out
}

// PadRows appends EmptyRow(width) to rows until it holds n rows.
func PadRows(rows []Row, width, n int) []Row {
	for len(rows) < n {
		rows = append(rows, EmptyRow(width))
	}

	return rows
}
