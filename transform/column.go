// Package transform implements the column transform engine: a per-cell
// rewrite applied to one designated column of every row of a table, able to
// both replace and delete that column.
package transform

import (
	"fmt"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/table"
)

// Stats summarizes a transform call.
type Stats struct {
	// Rows is the number of rows processed, header included.
	Rows int
	// Rewritten counts rows whose target cell was kept with a new value.
	Rewritten int
	// Dropped counts rows whose target cell was removed.
	Dropped int
	// PassedThrough counts rows copied unchanged under ShapePassThrough.
	PassedThrough int
}

// Column applies rw to cell column of every row of t and returns a new table.
// t is not modified.
//
// For each row exactly one cell, the one at column, is handed to rw:
//   - Keep(v) replaces it; if v contains the separator it expands into
//     several cells.
//   - Drop() removes it; the cells after it shift left by one.
//
// If rw implements Resetter it is reset before the first row.
func Column(t *table.Table, column int, rw Rewriter, opts ...Option) (*table.Table, Stats, error) {
	var stats Stats

	if rw == nil {
		return nil, stats, errs.ErrNilRewriter
	}
	if column < 0 {
		return nil, stats, fmt.Errorf("%w: index %d", errs.ErrInvalidColumn, column)
	}
	if err := table.ValidateSeparator(t.Separator); err != nil {
		return nil, stats, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, stats, err
	}

	if r, ok := rw.(Resetter); ok {
		r.Reset()
	}

	out := &table.Table{Name: t.Name, Separator: t.Separator, Rows: make([]table.Row, 0, len(t.Rows))}
	for i, row := range t.Rows {
		stats.Rows++

		if i == 0 && cfg.skipHeader {
			out.Append(row.Clone())
			continue
		}

		if column >= len(row) {
			if cfg.shape == ShapeStrict {
				return nil, stats, fmt.Errorf("%w: %s row %d has %d cells, column %d requested",
					errs.ErrShapeMismatch, t.Name, i, len(row), column)
			}
			stats.PassedThrough++
			out.Append(row.Clone())

			continue
		}

		res := rw.Rewrite(row[column], t.Separator)
		value, kept := res.Value()

		var expanded table.Row
		if kept {
			expanded = table.Split(value, t.Separator)
			stats.Rewritten++
		} else {
			stats.Dropped++
		}

		newRow := make(table.Row, 0, len(row)-1+len(expanded))
		newRow = append(newRow, row[:column]...)
		newRow = append(newRow, expanded...)
		newRow = append(newRow, row[column+1:]...)
		out.Append(newRow)
	}

	return out, stats, nil
}

// MapRows applies m to every row of t and returns a new table. Rows for which
// m reports ok == false are handled according to the ShapePolicy.
func MapRows(t *table.Table, m RowMapper, opts ...Option) (*table.Table, Stats, error) {
	var stats Stats

	if m == nil {
		return nil, stats, errs.ErrNilRewriter
	}
	if err := table.ValidateSeparator(t.Separator); err != nil {
		return nil, stats, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, stats, err
	}

	if r, ok := m.(Resetter); ok {
		r.Reset()
	}

	out := &table.Table{Name: t.Name, Separator: t.Separator, Rows: make([]table.Row, 0, len(t.Rows))}
	for i, row := range t.Rows {
		stats.Rows++

		if i == 0 && cfg.skipHeader {
			out.Append(row.Clone())
			continue
		}

		mapped, ok := m.MapRow(row.Clone(), i, t.Separator)
		if !ok {
			if cfg.shape == ShapeStrict {
				return nil, stats, fmt.Errorf("%w: %s row %d has %d cells",
					errs.ErrShapeMismatch, t.Name, i, len(row))
			}
			stats.PassedThrough++
			out.Append(row.Clone())

			continue
		}

		stats.Rewritten++
		out.Append(mapped)
	}

	return out, stats, nil
}

// Chain applies several column rewrites in order, each to the output of the
// previous one. The same options are used for every step.
func Chain(t *table.Table, steps []Step, opts ...Option) (*table.Table, error) {
	cur := t
	for _, s := range steps {
		next, _, err := Column(cur, s.Column, s.Rewriter, opts...)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", s.Column, err)
		}
		cur = next
	}

	return cur, nil
}

// Step is one element of a Chain.
type Step struct {
	Column   int
	Rewriter Rewriter
}
