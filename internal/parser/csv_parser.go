package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ParseGradesFile reads a grades file into a numeric table, one row per
// record and one column per field. Paths ending in .xlsx are read as
// workbooks; everything else is treated as delimited text.
//
// Missing fields become NaN. Errors wrap ErrFileNotFound or ErrFileFormat
// where the cause is known; any other error is passed through wrapped.
func ParseGradesFile(path string, delimiter rune) (*mat.Dense, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseGradesWorkbook(path)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open grades file: %w", err)
	}
	defer file.Close()

	return ParseGradesCSV(file, delimiter)
}

// ParseGradesCSV reads delimited numeric records from r. Lines starting
// with '#' and blank lines are skipped. Every record must have the same
// number of fields.
func ParseGradesCSV(r io.Reader, delimiter rune) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var rows [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: %w", ErrFileFormat, err)
			}
			return nil, fmt.Errorf("failed to read grades data: %w", err)
		}

		row := make([]float64, len(record))
		for i, field := range record {
			val, err := parseCell(field)
			if err != nil {
				line, col := reader.FieldPos(i)
				return nil, fmt.Errorf("%w: line %d, column %d: invalid value %q", ErrFileFormat, line, col, field)
			}
			row[i] = val
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrFileFormat)
	}
	return newGradesTable(rows), nil
}
