package table

import (
	"fmt"

	"github.com/arloliu/tsfuse/errs"
)

// Row is an ordered sequence of cells.
type Row []string

// Clone returns a copy of the row that shares no memory with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)

	return out
}

// IsComplete reports whether the row has at least one cell and no empty cell.
func (r Row) IsComplete() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if c == "" {
			return false
		}
	}

	return true
}

// Table is an ordered list of rows where row 0 is the header.
type Table struct {
	// Name is the logical source name, used to prefix derived column names
	// when tables are merged. It is usually the file basename without extension.
	Name string
	// Separator splits and joins the cells of every row.
	Separator string
	// Rows holds the header followed by the data rows.
	Rows []Row
}

// New creates an empty table.
func New(name, sep string) *Table {
	return &Table{Name: name, Separator: sep}
}

// Parse splits lines into a table. Every line, including the header, becomes
// one row.
func Parse(name string, lines []string, sep string) (*Table, error) {
	if err := ValidateSeparator(sep); err != nil {
		return nil, err
	}

	t := &Table{Name: name, Separator: sep, Rows: make([]Row, len(lines))}
	for i, ln := range lines {
		t.Rows[i] = Split(ln, sep)
	}

	return t, nil
}

// Lines joins every row back into a line.
func (t *Table) Lines() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = Join(r, t.Separator)
	}

	return out
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// HasHeader reports whether the table has a header row.
func (t *Table) HasHeader() bool {
	return len(t.Rows) > 0
}

// Header returns the header row, or nil for an empty table.
func (t *Table) Header() Row {
	if len(t.Rows) == 0 {
		return nil
	}

	return t.Rows[0]
}

// Data returns the data rows, excluding the header.
func (t *Table) Data() []Row {
	if len(t.Rows) <= 1 {
		return nil
	}

	return t.Rows[1:]
}

// Len returns the number of rows, header included.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the header width.
func (t *Table) Width() int {
	return len(t.Header())
}

// MaxWidth returns the widest row width over all rows, header included.
func (t *Table) MaxWidth() int {
	w := 0
	for _, r := range t.Rows {
		w = max(w, len(r))
	}

	return w
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Separator: t.Separator, Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}

	return out
}

// RequireHeader returns errs.ErrMissingHeader if t is nil or has no rows.
func RequireHeader(t *Table) error {
	if t == nil || !t.HasHeader() {
		name := ""
		if t != nil {
			name = t.Name
		}

		return fmt.Errorf("%w: %q", errs.ErrMissingHeader, name)
	}

	return nil
}
