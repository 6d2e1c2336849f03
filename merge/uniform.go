package merge

import "github.com/arloliu/tsfuse/table"

// Uniform concatenates tables side by side by row position.
//
// Each table is first padded to its own widest row, then to the largest row
// count of all tables with empty rows of that width. Row i of the result is
// row i of every table in order. The header takes no special part: it is
// row 0 like any other. Uniform on a single table returns it padded to its
// own widest row.
func Uniform(tables []*table.Table) (*table.Table, error) {
	sep, err := commonSeparator(tables)
	if err != nil {
		return nil, err
	}

	rows, widths := 0, make([]int, len(tables))
	for i, t := range tables {
		rows = max(rows, t.Len())
		widths[i] = t.MaxWidth()
	}

	total := 0
	for _, w := range widths {
		total += w
	}

	out := &table.Table{Name: tables[0].Name, Separator: sep, Rows: make([]table.Row, rows)}
	for r := range rows {
		line := make(table.Row, 0, total)
		for i, t := range tables {
			if r < t.Len() {
				line = append(line, table.PadRow(t.Rows[r], widths[i])...)
			} else {
				line = append(line, table.EmptyRow(widths[i])...)
			}
		}
		out.Rows[r] = line
	}

	return out, nil
}
