package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

// ParseGradesWorkbook reads the first sheet of an .xlsx workbook into a
// numeric table. Spreadsheets drop trailing empty cells, so short rows are
// padded with NaN up to the widest row. Empty rows are skipped.
func ParseGradesWorkbook(path string) (*mat.Dense, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat grades workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %w", ErrFileFormat, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook does not contain any sheets", ErrFileFormat)
	}

	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	width := 0
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}

	var rows [][]float64
	for rowIdx, row := range cells {
		if len(row) == 0 {
			continue
		}
		values := make([]float64, width)
		for i := range values {
			values[i] = math.NaN()
		}
		for i, cell := range row {
			val, err := parseCell(cell)
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(i+1, rowIdx+1)
				return nil, fmt.Errorf("%w: cell %s: invalid value %q", ErrFileFormat, name, cell)
			}
			values[i] = val
		}
		rows = append(rows, values)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrFileFormat)
	}
	return newGradesTable(rows), nil
}
