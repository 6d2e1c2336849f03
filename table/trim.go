package table

import (
	"fmt"

	"github.com/arloliu/tsfuse/errs"
)

// TrimPartial returns a copy of t without the degenerate rows at either end
// of the data: leading rows before the first complete row and trailing rows
// after the last complete row are dropped. A row is complete when none of its
// cells is empty. Partial rows between complete ones are kept.
//
// A table without any complete data row is reduced to its header.
func TrimPartial(t *Table) (*Table, error) {
	if err := RequireHeader(t); err != nil {
		return nil, err
	}

	out := &Table{Name: t.Name, Separator: t.Separator}
	out.Append(t.Header().Clone())

	data := t.Data()
	start, end := -1, -1
	for i, r := range data {
		if r.IsComplete() {
			start = i
			break
		}
	}
	for i := len(data) - 1; i >= 0; i-- {
		if data[i].IsComplete() {
			end = i
			break
		}
	}
	if start < 0 {
		return out, nil
	}

	for _, r := range data[start : end+1] {
		out.Append(r.Clone())
	}

	return out, nil
}

// Head returns a copy of the first n rows of t, header included.
func Head(t *Table, n int) (*Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRowCount, n)
	}

	out := &Table{Name: t.Name, Separator: t.Separator}
	for _, r := range t.Rows[:min(n, len(t.Rows))] {
		out.Append(r.Clone())
	}

	return out, nil
}
