package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/arloliu/tsfuse/table"
)

// DefaultSheet is the sheet name used when WriteXLSX gets an empty name.
const DefaultSheet = "Sheet1"

// WriteXLSX writes t to a new workbook at path, replacing any existing file.
// The header row is written as text; data cells that parse as finite numbers
// are written as numbers so they can be charted directly.
func WriteXLSX(t *table.Table, path, sheet string) error {
	if err := table.RequireHeader(t); err != nil {
		return err
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("xlsx: stream writer: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i, err)
		}

		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v, i == 0)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}

	return nil
}

func cellValue(v string, header bool) any {
	if header || v == "" {
		return v
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return v
	}

	return n
}
