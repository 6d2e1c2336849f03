// Package tsfuse fuses delimited time-series logs that were sampled
// independently, such as accelerometer, gyroscope and magnetometer files,
// into one time-aligned table.
//
// # Core Features
//
//   - Key-indexed merge: rows sharing a numeric key are aligned across sources
//     and padded so every source spans the same number of rows per key
//   - Column transforms that replace, expand or delete one column per row
//   - Positional (uniform) merge of tables without a key
//   - Transparent zstd, s2 and lz4 compression of line files by extension
//   - Single '*' wildcards in input file names
//
// # Basic Usage
//
// Converting the clock column of two logs and merging them:
//
//	import (
//	    "github.com/arloliu/tsfuse"
//	    "github.com/arloliu/tsfuse/linestore"
//	    "github.com/arloliu/tsfuse/transform/builtin"
//	)
//
//	store, _ := linestore.New("/data/run1")
//	clock := builtin.DefaultClockToSeconds()
//	_, _ = tsfuse.ModifyColumn(store, "acc.csv", "a.csv", "A", clock, ",")
//	_, _ = tsfuse.ModifyColumn(store, "gyr.csv", "g.csv", "A", clock, ",")
//
//	report, err := tsfuse.MergeByIndex(store, []string{"g.csv", "a.csv"}, "combined.csv", ",", 1)
//
// The merged header is the key header of the first file followed by every
// other column, prefixed with its file's base name: "Time,ggx,ggy,ggz,aax,...".
//
// # Package Structure
//
// The functions in this package read their inputs through a linestore.Store,
// run one engine operation and write the result back. The engines work on
// in-memory tables and live in their own packages: table (rows, codec,
// trimming), transform (column rewrites), merge (key-indexed and uniform
// merges). The pipeline package composes them into the complete sensor job.
package tsfuse

import (
	"fmt"

	"github.com/arloliu/tsfuse/linestore"
	"github.com/arloliu/tsfuse/merge"
	"github.com/arloliu/tsfuse/table"
	"github.com/arloliu/tsfuse/transform"
	"github.com/arloliu/tsfuse/transform/builtin"
)

// ReadTable reads the file name refers to as a table named after the file.
//
// The table name is the base name of the resolved file without extensions,
// so "acc_*.csv.zst" resolving to "acc_0708.csv.zst" gives "acc_0708".
func ReadTable(store *linestore.Store, name, sep string) (*table.Table, error) {
	path, err := store.Resolve(name)
	if err != nil {
		return nil, err
	}
	lines, err := store.ReadLines(name)
	if err != nil {
		return nil, err
	}

	t, err := table.Parse(linestore.NameOf(path), lines, sep)
	if err != nil {
		return nil, err
	}
	if err := table.RequireHeader(t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// WriteTable writes t to the file out.
func WriteTable(store *linestore.Store, out string, t *table.Table) error {
	return store.WriteLines(out, t.Lines())
}

// MergeByIndex merges the files in by the numeric key in their first column
// and writes the result to out. See merge.ByIndex for the merge rules; each
// file's derived columns are prefixed with its base name.
//
// Nothing is written if any input is missing, ambiguous or has no header.
func MergeByIndex(store *linestore.Store, in []string, out, sep string, captureLimit int, opts ...merge.Option) (merge.Report, error) {
	tables, err := readTables(store, in, sep)
	if err != nil {
		return merge.Report{}, err
	}

	merged, report, err := merge.ByIndex(tables, captureLimit, opts...)
	if err != nil {
		return report, err
	}

	return report, WriteTable(store, out, merged)
}

// ModifyColumn applies rw to the column named column ("A", "B", ...) of every
// row of in, header included, and writes the result to out.
func ModifyColumn(
	store *linestore.Store,
	in, out, column string,
	rw transform.Rewriter,
	sep string,
	opts ...transform.Option,
) (transform.Stats, error) {
	idx, err := table.ColumnIndex(column)
	if err != nil {
		return transform.Stats{}, err
	}
	t, err := ReadTable(store, in, sep)
	if err != nil {
		return transform.Stats{}, err
	}

	result, stats, err := transform.Column(t, idx, rw, opts...)
	if err != nil {
		return stats, err
	}

	return stats, WriteTable(store, out, result)
}

// ToSpherical replaces the three columns starting at column with their
// spherical coordinates r, theta and phi and writes the result to out.
func ToSpherical(store *linestore.Store, in, out, column, sep string, opts ...transform.Option) (transform.Stats, error) {
	idx, err := table.ColumnIndex(column)
	if err != nil {
		return transform.Stats{}, err
	}
	t, err := ReadTable(store, in, sep)
	if err != nil {
		return transform.Stats{}, err
	}

	result, stats, err := transform.MapRows(t, builtin.NewSpherical(idx), opts...)
	if err != nil {
		return stats, err
	}

	return stats, WriteTable(store, out, result)
}

// Merge concatenates the files in side by side by row position and writes
// the result to out. See merge.Uniform.
func Merge(store *linestore.Store, in []string, out, sep string) error {
	tables, err := readTables(store, in, sep)
	if err != nil {
		return err
	}

	merged, err := merge.Uniform(tables)
	if err != nil {
		return err
	}

	return WriteTable(store, out, merged)
}

// PullFirst copies the first rows lines of in, header included, to out.
func PullFirst(store *linestore.Store, in, out string, rows int) error {
	lines, err := store.ReadFirstLines(in, rows)
	if err != nil {
		return err
	}

	return store.WriteLines(out, lines)
}

// TrimPartial removes the partially filled rows at the start and end of in
// and writes the result to out. See table.TrimPartial.
func TrimPartial(store *linestore.Store, in, out, sep string) error {
	t, err := ReadTable(store, in, sep)
	if err != nil {
		return err
	}

	trimmed, err := table.TrimPartial(t)
	if err != nil {
		return err
	}

	return WriteTable(store, out, trimmed)
}

func readTables(store *linestore.Store, in []string, sep string) ([]*table.Table, error) {
	tables := make([]*table.Table, 0, len(in))
	for _, name := range in {
		t, err := ReadTable(store, name, sep)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}
