package transform

// Rewriter rewrites the designated cell of each row.
//
// Rewrite receives the cell content and the table separator, so a rewriter can
// split one cell into several by returning a value that contains sep.
type Rewriter interface {
	Rewrite(cell, sep string) Result
}

// Resetter is implemented by rewriters that carry state across rows. Column
// calls Reset once before the first row of every table, so the same rewriter
// gives the same output on every run.
type Resetter interface {
	Reset()
}

// RewriteFunc adapts a plain function to the Rewriter interface.
type RewriteFunc func(cell, sep string) Result

// Rewrite calls f(cell, sep).
func (f RewriteFunc) Rewrite(cell, sep string) Result {
	return f(cell, sep)
}

// RowMapper rewrites a whole row. index is the row position, 0 being the header.
// Returning ok == false marks the row as too short for the mapper; Column's
// ShapePolicy then decides whether that fails the call.
type RowMapper interface {
	MapRow(row []string, index int, sep string) (out []string, ok bool)
}

// RowMapperFunc adapts a plain function to the RowMapper interface.
type RowMapperFunc func(row []string, index int, sep string) ([]string, bool)

// MapRow calls f(row, index, sep).
func (f RowMapperFunc) MapRow(row []string, index int, sep string) ([]string, bool) {
	return f(row, index, sep)
}
