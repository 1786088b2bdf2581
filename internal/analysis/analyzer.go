package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ImputeColumnMeans replaces every NaN cell of m, in place, with the mean of
// the non-NaN cells of its column. Columns without NaN are left untouched.
// A column with no present values has a NaN mean, so its cells stay NaN.
//
// One entry is returned per column that contained NaN.
func ImputeColumnMeans(m *mat.Dense) []ColumnImputation {
	if m == nil {
		return nil
	}

	rows, cols := m.Dims()
	var imputed []ColumnImputation
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, m)

		present := make([]float64, 0, rows)
		var missing []int
		for i, v := range col {
			if v != v {
				missing = append(missing, i)
				continue
			}
			present = append(present, v)
		}
		if len(missing) == 0 {
			continue
		}

		mean := presentMean(present)
		for _, i := range missing {
			m.Set(i, j, mean)
		}
		imputed = append(imputed, ColumnImputation{Column: j, Filled: len(missing), Mean: mean})
	}
	return imputed
}

// ColumnMean returns the arithmetic mean of column j. NaN cells propagate.
func ColumnMean(m mat.Matrix, j int) float64 {
	return stat.Mean(mat.Col(nil, j, m), nil)
}

func presentMean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}
