// Package table holds the in-memory table model and the row codec shared by
// the transform and merge engines.
//
// A Table is an ordered list of rows; row 0 is the header and every other row
// is data. Rows are split from, and joined back into, delimiter-separated
// lines with a caller-supplied separator:
//
//	cells := table.Split("1.0,0.01,9.81", ",") // ["1.0" "0.01" "9.81"]
//	line := table.Join(cells, ",")              // "1.0,0.01,9.81"
//
// The codec does not support quoting or escaping: the separator must not occur
// inside cell content. Rows may be ragged; nothing in this package enforces
// that data rows match the header width.
package table
