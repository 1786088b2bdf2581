package analysis

// ColumnImputation records what imputation did to one column.
type ColumnImputation struct {
	Column int
	Filled int     // number of NaN cells overwritten
	Mean   float64 // mean of the present values; NaN when none were present
}
