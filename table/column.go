package table

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arloliu/tsfuse/errs"
)

// ColumnIndex maps a spreadsheet-style column name to a zero-based index:
// "A" is 0, "B" is 1, "Z" is 25 and, past the single letters, "AA" is 26.
// Names are case-insensitive.
func ColumnIndex(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", errs.ErrInvalidColumn)
	}

	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", errs.ErrInvalidColumn, name, err)
	}

	return n - 1, nil
}

// MustColumnIndex is like ColumnIndex but panics on an invalid name.
// It is meant for constant column names in pipeline definitions.
func MustColumnIndex(name string) int {
	idx, err := ColumnIndex(name)
	if err != nil {
		panic(err)
	}

	return idx
}

// ColumnName maps a zero-based index back to its spreadsheet-style name.
func ColumnName(index int) (string, error) {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return "", fmt.Errorf("%w: index %d: %w", errs.ErrInvalidColumn, index, err)
	}

	return name, nil
}
