package merge

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/collision"
	"github.com/arloliu/tsfuse/table"
)

// Unlimited disables the per-source capture limit of ByIndex.
const Unlimited = 0

// group holds the rows of every source that share one key.
type group struct {
	key  float64
	text string        // key cell of the row that created the group
	rows [][]table.Row // per source, key cell removed
}

// ByIndex merges tables by the numeric key in their first column.
//
// The output header is the key header of the first source followed by the
// non-key headers of every source, each prefixed with the source Name. Data
// rows are grouped by key in ascending order. Within a group each source
// keeps at most captureLimit rows in file order (Unlimited keeps all); the
// group then spans as many output rows as its largest source, and shorter
// sources are padded with empty rows of their non-key width.
//
// Rows without a separator or with a non-numeric key are skipped and counted
// in the report; they never fail the merge. Keys match by exact value, so
// "1.0" and "1" join while "1.0" and "1.00001" do not. The key cell emitted
// for a group is the text of the first row that created it.
func ByIndex(tables []*table.Table, captureLimit int, opts ...Option) (*table.Table, Report, error) {
	var report Report

	if captureLimit < 0 {
		return nil, report, fmt.Errorf("%w: %d", errs.ErrInvalidCaptureLimit, captureLimit)
	}
	sep, err := commonSeparator(tables)
	if err != nil {
		return nil, report, err
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, report, err
	}

	header, dups := mergedHeader(tables, cfg)
	report.DuplicateColumns = dups

	groups := make(map[uint64]*group)
	for src, t := range tables {
		for _, row := range t.Data() {
			report.Rows++

			key, status := rowKey(row)
			switch status {
			case keyNoSeparator:
				report.Skipped.NoSeparator++
				continue
			case keyNotNumeric:
				report.Skipped.NotNumeric++
				continue
			case keyNaN:
				report.Skipped.NaN++
				continue
			}

			bits := math.Float64bits(key)
			g, ok := groups[bits]
			if !ok {
				g = &group{key: key, text: row[0], rows: make([][]table.Row, len(tables))}
				groups[bits] = g
			}
			if captureLimit != Unlimited && len(g.rows[src]) >= captureLimit {
				report.Discarded++
				continue
			}
			g.rows[src] = append(g.rows[src], row[1:])
		}
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	slices.SortFunc(ordered, func(a, b *group) int {
		return compareKeys(a.key, b.key)
	})
	report.Groups = len(ordered)

	out := &table.Table{Name: tables[0].Name, Separator: sep, Rows: []table.Row{header}}
	for _, g := range ordered {
		n := 0
		for _, rows := range g.rows {
			n = max(n, len(rows))
		}

		for src, t := range tables {
			before := len(g.rows[src])
			g.rows[src] = table.PadRows(g.rows[src], t.Width()-1, n)
			report.Padded += n - before
		}

		for r := range n {
			line := table.Row{g.text}
			for src := range tables {
				line = append(line, g.rows[src][r]...)
			}
			out.Append(line)
		}
		report.Emitted += n
	}

	return out, report, nil
}

// commonSeparator validates the sources and returns their shared separator.
func commonSeparator(tables []*table.Table) (string, error) {
	if len(tables) == 0 {
		return "", errs.ErrNoSources
	}
	for _, t := range tables {
		if err := table.RequireHeader(t); err != nil {
			return "", err
		}
	}

	sep := tables[0].Separator
	if err := table.ValidateSeparator(sep); err != nil {
		return "", err
	}
	for _, t := range tables[1:] {
		if t.Separator != sep {
			return "", fmt.Errorf("%w: %q uses %q, %q uses %q",
				errs.ErrSeparatorMismatch, tables[0].Name, sep, t.Name, t.Separator)
		}
	}

	return sep, nil
}

func mergedHeader(tables []*table.Table, cfg *Config) (table.Row, []string) {
	keyHeader := tables[0].Header()[0]
	if cfg.keyHeader != "" {
		keyHeader = cfg.keyHeader
	}

	header := table.Row{keyHeader}
	tracker := collision.NewTracker()
	tracker.Track(keyHeader)

	for _, t := range tables {
		h := t.Header()
		if len(h) < 2 {
			continue
		}
		for _, name := range h[1:] {
			if !cfg.noPrefix {
				name = t.Name + name
			}
			tracker.Track(name)
			header = append(header, name)
		}
	}

	if !tracker.HasDuplicates() {
		return header, nil
	}

	return header, slices.Clone(tracker.Duplicates())
}
