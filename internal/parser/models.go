package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Column layout of a grades record:
// student number, four subject scores, total score.
const (
	StudentNumberColumn = 0
	TotalGradeColumn    = 5
	NumGradeFields      = 6
)

var (
	// ErrFileNotFound is returned when the grades file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileFormat is returned when the file content is not a uniform numeric grid.
	ErrFileFormat = errors.New("file format is not correct")
)

// parseCell converts one field. Empty or whitespace-only fields are missing
// values and become NaN; anything else must be a float.
func parseCell(field string) (float64, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

// newGradesTable flattens rows (all of equal width) into a row-major matrix.
func newGradesTable(rows [][]float64) *mat.Dense {
	numCols := len(rows[0])
	data := make([]float64, 0, len(rows)*numCols)
	for _, row := range rows {
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), numCols, data)
}
